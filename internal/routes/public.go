package routes

import "strings"

// PublicMatcher answers whether a route is served without authentication.
// Entries are either "METHOD /route/template" or a bare template matching
// every method; templates are compared against gin's registered route
// path, parameters included.
type PublicMatcher struct {
	entries map[string]struct{}
}

func NewPublicMatcher(paths []string) *PublicMatcher {
	entries := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		entries[normalizeEntry(p)] = struct{}{}
	}
	return &PublicMatcher{entries: entries}
}

func (m *PublicMatcher) IsPublic(method, routePath string) bool {
	if routePath == "" {
		return false
	}
	if _, ok := m.entries[strings.ToUpper(method)+" "+routePath]; ok {
		return true
	}
	_, ok := m.entries[routePath]
	return ok
}

func normalizeEntry(entry string) string {
	entry = strings.TrimSpace(entry)
	if i := strings.IndexByte(entry, ' '); i > 0 {
		return strings.ToUpper(entry[:i]) + " " + strings.TrimSpace(entry[i+1:])
	}
	return entry
}
