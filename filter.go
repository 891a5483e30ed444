package casjobs

import (
	"strings"
)

// Filter is the set of optional search conditions accepted by GetJobs.
// Each field holds a raw condition in the service's mini-grammar:
//
//	VALUE     equality
//	V1|V2|V3  any of the values
//	A,        greater than or equal to A
//	,B        less than or equal to B
//	A,B       between A and B, inclusive
//
// Jobs matching the filter are the intersection across fields of the union
// of each field's alternatives. Empty fields are omitted. The AnyOf,
// AtLeast, AtMost and Between helpers build well-formed condition values.
type Filter struct {
	JobID      string
	TimeSubmit string
	TimeStart  string
	TimeEnd    string
	Status     string
	Queue      string
	TaskName   string
	Error      string
	Query      string
	Context    string
	Type       string

	// WebServicesID restricts the listing to another owner's jobs; it
	// has no effect without the admin privilege.
	WebServicesID string
}

type condition struct {
	field string
	value string
}

// conditions returns the fields in their fixed wire order so that equal
// filters always compile to identical strings.
func (f Filter) conditions() []condition {
	return []condition{
		{"jobid", f.JobID},
		{"timesubmit", f.TimeSubmit},
		{"timestart", f.TimeStart},
		{"timeend", f.TimeEnd},
		{"status", f.Status},
		{"queue", f.Queue},
		{"taskname", f.TaskName},
		{"error", f.Error},
		{"query", f.Query},
		{"context", f.Context},
		{"type", f.Type},
		{"wsid", f.WebServicesID},
	}
}

// Compile serializes the filter into the single condition string the
// listing operation consumes: "field:value" terms joined by ";". An empty
// filter compiles to "", meaning no restriction. Values containing ":" or
// ";" would make the compiled string ambiguous and are rejected before any
// remote call; "," and "|" are part of the grammar, not payload.
func (f Filter) Compile() (string, error) {
	var terms []string
	for _, c := range f.conditions() {
		if c.value == "" {
			continue
		}
		if strings.ContainsAny(c.value, ":;") {
			return "", failf(KindInvalidFilterInput, "Filter.Compile",
				"%s value %q contains a reserved character", c.field, c.value)
		}
		terms = append(terms, c.field+":"+c.value)
	}
	return strings.Join(terms, ";"), nil
}

// AnyOf builds a condition matching any of the given values.
func AnyOf(values ...string) string {
	return strings.Join(values, "|")
}

// AtLeast builds a condition matching values greater than or equal to v.
func AtLeast(v string) string {
	return v + ","
}

// AtMost builds a condition matching values less than or equal to v.
func AtMost(v string) string {
	return "," + v
}

// Between builds a condition matching the inclusive range [lo, hi].
func Between(lo, hi string) string {
	return lo + "," + hi
}
