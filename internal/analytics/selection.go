package analytics

// Selection identifies which instrument columns a query runs over: every
// available column, or an explicit subset. It replaces the magic "ALL"
// sentinel that UIs tend to mix into instrument sets; resolution to a
// concrete column list happens once at the boundary, before any series
// computation.
type Selection struct {
	all   bool
	names []string
}

// All selects every available column.
func All() Selection {
	return Selection{all: true}
}

// Pick selects an explicit set of columns.
func Pick(names ...string) Selection {
	return Selection{names: names}
}

// IsAll reports whether the selection covers every column.
func (s Selection) IsAll() bool {
	return s.all
}

// Names returns the requested subset (nil for All).
func (s Selection) Names() []string {
	return s.names
}

// Resolve maps the selection onto the available columns. Unknown names
// contribute nothing rather than erroring; All resolves to the full list.
func (s Selection) Resolve(available []string) []string {
	if s.all {
		out := make([]string, len(available))
		copy(out, available)
		return out
	}

	known := make(map[string]struct{}, len(available))
	for _, name := range available {
		known[name] = struct{}{}
	}

	out := make([]string, 0, len(s.names))
	for _, name := range s.names {
		if _, ok := known[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
