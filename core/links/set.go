package links

// Set keeps URLs in insertion order, dropping repeats after normalisation.
type Set struct {
	items []string
	seen  map[string]bool
}

// NewSet creates a Set seeded with urls.
func NewSet(urls ...string) *Set {
	s := &Set{seen: make(map[string]bool)}
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Add appends a URL if it hasn't been seen before. Empty URLs are ignored.
// It reports whether the URL was added.
func (s *Set) Add(rawURL string) bool {
	u := NormalizeURL(rawURL)
	if u == "" || s.seen[u] {
		return false
	}
	s.seen[u] = true
	s.items = append(s.items, u)
	return true
}

// Len returns the number of unique URLs.
func (s *Set) Len() int {
	return len(s.items)
}

// All returns the URLs in insertion order.
func (s *Set) All() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
