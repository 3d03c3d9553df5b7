// Package integrations provides HTTP clients for the upstream APIs that feed
// the language statistics.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [github]: repository listing and per-repository language breakdowns
//   - [colors]: the language color registry
//
// # Client Pattern
//
// Subpackage clients embed [Client], which performs GET requests with default
// headers, maps status codes onto [ErrNotFound] and [ErrNetwork], and reports
// every request to the observability HTTP hooks.
//
//	client := github.NewClient(token, github.WithTimeout(10*time.Second))
//	repos, err := client.ListRepos(ctx, "octocat")
//
// Failed requests are not retried.
//
// [github]: github.com/matzehuels/langstats/pkg/integrations/github
// [colors]: github.com/matzehuels/langstats/pkg/integrations/colors
package integrations
