package registry

import (
	"strings"
	"time"
)

// Scope selects which columns a search term is matched against.
type Scope int

const (
	ScopeAll Scope = iota
	ScopePlate
	ScopeCallSign
)

// String returns the user-facing label for the scope.
func (sc Scope) String() string {
	switch sc {
	case ScopePlate:
		return ColumnPlate
	case ScopeCallSign:
		return ColumnCallSign
	default:
		return "All Columns"
	}
}

// Next cycles to the following scope.
func (sc Scope) Next() Scope {
	switch sc {
	case ScopeAll:
		return ScopePlate
	case ScopePlate:
		return ScopeCallSign
	default:
		return ScopeAll
	}
}

// ViewState captures the user's current interaction settings. It is owned
// by the UI and read at repaint time, so filtering always reflects the
// latest input rather than the state at fetch time.
type ViewState struct {
	Search     string
	Scope      Scope
	AutoUpdate bool
	Interval   time.Duration
}

// Filter returns the rows whose value in the scoped column(s) contains
// term, case-insensitively. An empty term keeps every row in order.
// Matching is plain substring containment, not tokenized or fuzzy.
func Filter(rows []Row, term string, scope Scope) []Row {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}

	matched := make([]Row, 0, len(rows))
	for _, r := range rows {
		if rowMatches(r, term, scope) {
			matched = append(matched, r)
		}
	}
	return matched
}

func rowMatches(r Row, term string, scope Scope) bool {
	switch scope {
	case ScopePlate:
		return containsFold(r.PlateNumber, term)
	case ScopeCallSign:
		return containsFold(r.CallSign, term)
	default:
		return containsFold(r.Value(ColumnID), term) ||
			containsFold(r.PlateNumber, term) ||
			containsFold(r.CallSign, term)
	}
}

// containsFold reports whether s contains the already-lowercased term.
func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
