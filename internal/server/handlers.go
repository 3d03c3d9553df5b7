package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/langstats/pkg/badge"
	"github.com/matzehuels/langstats/pkg/buildinfo"
	apperrors "github.com/matzehuels/langstats/pkg/errors"
	"github.com/matzehuels/langstats/pkg/observability"
)

// SVGContentType is the Content-Type of the badge response.
const SVGContentType = "image/svg+xml;charset=utf-8"

func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, refreshed, err := s.source.Snapshot(ctx)
	if err != nil {
		logger(ctx, s.logger).Error("badge", "err", err)
		status := apperrors.HTTPStatus(err)
		writeError(w, status, string(apperrors.GetCode(err)), apperrors.UserMessage(err))
		return
	}

	start := time.Now()
	svg := badge.Render(snap, s.render...)
	observability.Refresh().OnRender(ctx, len(snap.Languages), len(svg), time.Since(start))

	maxAge := int(s.source.Remaining(snap) / time.Second)
	h := w.Header()
	h.Set("Content-Type", SVGContentType)
	h.Set("Cache-Control", "max-age="+strconv.Itoa(maxAge))
	h.Set("Last-Modified", snap.Time().UTC().Format(http.TimeFormat))
	if refreshed {
		h.Set("X-Snapshot", "refreshed")
	} else {
		h.Set("X-Snapshot", "cached")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
