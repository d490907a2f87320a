package ticket

import (
	"fmt"
	"slices"
)

// Status is a ticket's lifecycle label.
type Status string

// Known statuses.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
	StatusComplete   Status = "complete"
)

// Statuses lists the known statuses in lifecycle order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed, StatusComplete}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a status name into a [Status].
func ParseStatus(name string) (Status, error) {
	status := Status(name)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, name)
	}

	return status, nil
}

// Filter selects records by status. The zero value matches every record.
type Filter struct {
	statuses map[Status]struct{}
}

// NewFilter returns a filter matching any of the given statuses.
// With no statuses the filter matches everything.
func NewFilter(statuses ...Status) Filter {
	if len(statuses) == 0 {
		return Filter{}
	}

	set := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}

	return Filter{statuses: set}
}

// Empty reports whether the filter has no selectors.
func (f Filter) Empty() bool {
	return len(f.statuses) == 0
}

// Matches reports whether the record's status literally equals one of the
// selected statuses.
func (f Filter) Matches(r *Record) bool {
	if len(f.statuses) == 0 {
		return true
	}

	_, ok := f.statuses[r.Status]

	return ok
}

// Apply returns the records matching f, preserving order.
func (f Filter) Apply(records []Record) []Record {
	if f.Empty() {
		return records
	}

	matched := make([]Record, 0, len(records))

	for i := range records {
		if f.Matches(&records[i]) {
			matched = append(matched, records[i])
		}
	}

	return matched
}
