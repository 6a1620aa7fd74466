package controller

import (
	"net/url"
	"strconv"
	"sync"
)

// PageParam is the query parameter carrying the current page.
const PageParam = "page"

// Location is the address bar: a URL whose page parameter tracks the current
// page, plus the history of addresses pushed during the session.
type Location struct {
	mu      sync.Mutex
	current url.URL
	history []string
}

// ParseLocation parses raw into a Location. Invalid input yields "/".
func ParseLocation(raw string) *Location {
	u, err := url.Parse(raw)
	if err != nil || u == nil {
		u = &url.URL{Path: "/"}
	}
	return &Location{current: *u, history: []string{u.String()}}
}

// Page returns the page parameter the way a browser's parseInt(...) || 1
// would read it, clamped to at least 1.
func (l *Location) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return parsePage(l.current.Query().Get(PageParam))
}

// Query returns a copy of the query parameters.
func (l *Location) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.Query()
}

// SetPage rewrites the page parameter and pushes the new address onto the
// history without navigating.
func (l *Location) SetPage(page int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.current.Query()
	q.Set(PageParam, strconv.Itoa(page))
	l.current.RawQuery = q.Encode()
	l.history = append(l.history, l.current.String())
}

// String returns the current address.
func (l *Location) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.String()
}

// History returns every address the session has shown, oldest first.
func (l *Location) History() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.history))
	copy(out, l.history)
	return out
}

// parsePage reads a leading optionally signed run of digits. Missing, zero,
// negative and non-numeric values become 1.
func parsePage(value string) int {
	i := 0
	for i < len(value) && (value[i] == ' ' || value[i] == '\t') {
		i++
	}
	start := i
	if i < len(value) && (value[i] == '+' || value[i] == '-') {
		i++
	}
	digits := i
	for i < len(value) && value[i] >= '0' && value[i] <= '9' {
		i++
	}
	if i == digits {
		return 1
	}
	n, err := strconv.Atoi(value[start:i])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
