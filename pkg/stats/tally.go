package stats

// Entry is one language and its byte count.
type Entry struct {
	Name  string
	Bytes int64
}

// Tally accumulates byte counts per language, remembering the order in
// which languages were first seen.
type Tally struct {
	order []string
	bytes map[string]int64
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{bytes: make(map[string]int64)}
}

// Add adds n bytes to name. Negative counts are ignored.
func (t *Tally) Add(name string, n int64) {
	if n < 0 {
		return
	}
	if _, ok := t.bytes[name]; !ok {
		t.order = append(t.order, name)
	}
	t.bytes[name] += n
}

// Merge adds every entry of o, in o's order.
func (t *Tally) Merge(o *Tally) {
	if o == nil {
		return
	}
	for _, name := range o.order {
		t.Add(name, o.bytes[name])
	}
}

// Get returns the byte count for name.
func (t *Tally) Get(name string) (int64, bool) {
	n, ok := t.bytes[name]
	return n, ok
}

// Len returns the number of distinct languages.
func (t *Tally) Len() int { return len(t.order) }

// Total returns the sum of all byte counts.
func (t *Tally) Total() int64 {
	var n int64
	for _, b := range t.bytes {
		n += b
	}
	return n
}

// Entries returns the languages in first-seen order.
func (t *Tally) Entries() []Entry {
	out := make([]Entry, len(t.order))
	for i, name := range t.order {
		out[i] = Entry{Name: name, Bytes: t.bytes[name]}
	}
	return out
}
