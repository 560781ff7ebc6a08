package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/kimhsiao/eboard/internal/models"
)

// Filter represents a single listing filter condition.
type Filter interface {
	// SQL returns the SQL fragment for this filter
	SQL() string

	// Args returns the arguments for this filter
	Args() []interface{}

	// Valid checks if the filter is valid
	Valid() bool
}

// WindowFilter keeps events lying inside [From, To). A zero bound is open.
type WindowFilter struct {
	From time.Time
	To   time.Time
}

// Valid checks that at least one bound is set.
func (f *WindowFilter) Valid() bool {
	return !f.From.IsZero() || !f.To.IsZero()
}

// Empty reports a window that can match nothing.
func (f *WindowFilter) Empty() bool {
	return !f.From.IsZero() && !f.To.IsZero() && !f.From.Before(f.To)
}

// SQL returns the SQL fragment for window filtering.
func (f *WindowFilter) SQL() string {
	var parts []string
	if !f.From.IsZero() {
		parts = append(parts, "e.start_at >= ?")
	}
	if !f.To.IsZero() {
		parts = append(parts, "e.end_at < ?")
	}
	return strings.Join(parts, " AND ")
}

// Args returns the arguments for window filtering.
func (f *WindowFilter) Args() []interface{} {
	var args []interface{}
	if !f.From.IsZero() {
		args = append(args, unix(f.From))
	}
	if !f.To.IsZero() {
		args = append(args, unix(f.To))
	}
	return args
}

// KindFilter keeps events of the given bindings.
type KindFilter struct {
	Kinds []models.EventKind
}

// Valid checks that every kind is known.
func (f *KindFilter) Valid() bool {
	if len(f.Kinds) == 0 {
		return false
	}
	for _, k := range f.Kinds {
		switch k {
		case models.EventStandalone, models.EventTask, models.EventProject:
		default:
			return false
		}
	}
	return true
}

// SQL returns the SQL fragment for kind filtering.
func (f *KindFilter) SQL() string {
	return "e.kind IN (" + placeholders(len(f.Kinds)) + ")"
}

// Args returns the arguments for kind filtering.
func (f *KindFilter) Args() []interface{} {
	args := make([]interface{}, len(f.Kinds))
	for i, k := range f.Kinds {
		args[i] = string(k)
	}
	return args
}

// FilterBuilder builds SQL filter conditions from multiple filters.
type FilterBuilder struct {
	filters []Filter
	empty   bool
}

// NewFilterBuilder creates a new FilterBuilder.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{
		filters: make([]Filter, 0),
	}
}

// Window adds an event window filter.
func (fb *FilterBuilder) Window(from, to time.Time) *FilterBuilder {
	filter := &WindowFilter{From: from, To: to}
	if filter.Empty() {
		fb.empty = true
	}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// Kinds adds an event kind filter. Unknown kinds are ignored.
func (fb *FilterBuilder) Kinds(kinds ...models.EventKind) *FilterBuilder {
	filter := &KindFilter{Kinds: kinds}
	if filter.Valid() {
		fb.filters = append(fb.filters, filter)
	}
	return fb
}

// HasFilters returns true if any filters have been added.
func (fb *FilterBuilder) HasFilters() bool {
	return len(fb.filters) > 0
}

// MatchesNothing reports a filter set that selects no rows, such as a
// window whose start lies after its end.
func (fb *FilterBuilder) MatchesNothing() bool {
	return fb.empty
}

// Build builds the SQL WHERE fragment and returns the arguments.
func (fb *FilterBuilder) Build() (string, []interface{}) {
	if !fb.HasFilters() {
		return "", nil
	}

	var sqlParts []string
	var args []interface{}

	for _, filter := range fb.filters {
		sqlParts = append(sqlParts, filter.SQL())
		args = append(args, filter.Args()...)
	}

	return strings.Join(sqlParts, " AND "), args
}

// String returns a string representation of the filters (for debugging).
func (fb *FilterBuilder) String() string {
	if !fb.HasFilters() {
		return "(no filters)"
	}

	var parts []string
	for _, filter := range fb.filters {
		parts = append(parts, fmt.Sprintf("%T", filter))
	}
	return strings.Join(parts, ", ")
}

// Page selects a slice of an ordered listing. Zero PerPage means all rows.
type Page struct {
	Number  int
	PerPage int
}

// MaxPerPage caps the page size a caller may request.
const MaxPerPage = 100

// SQL returns the LIMIT/OFFSET clause for the page.
func (p Page) SQL() (string, []interface{}) {
	if p.PerPage <= 0 {
		return "", nil
	}
	per := p.PerPage
	if per > MaxPerPage {
		per = MaxPerPage
	}
	number := p.Number
	if number < 1 {
		number = 1
	}
	return " LIMIT ? OFFSET ?", []interface{}{per, (number - 1) * per}
}
