package entity

import "strings"

// Dataset names a tabular source of directory records.
type Dataset string

const (
	DatasetDoctors   Dataset = "doctors"
	DatasetHospitals Dataset = "hospitals"
)

// Selector picks which datasets a search covers.
type Selector string

const (
	SelectorAll       Selector = "all"
	SelectorDoctors   Selector = "doctors"
	SelectorHospitals Selector = "hospitals"
)

// ParseSelector maps a raw filter value to a Selector. Anything it does not
// recognise, including the empty string, selects all datasets.
func ParseSelector(raw string) Selector {
	switch Selector(raw) {
	case SelectorDoctors:
		return SelectorDoctors
	case SelectorHospitals:
		return SelectorHospitals
	default:
		return SelectorAll
	}
}

func (s Selector) IncludesDoctors() bool {
	return s == SelectorAll || s == SelectorDoctors
}

func (s Selector) IncludesHospitals() bool {
	return s == SelectorAll || s == SelectorHospitals
}

// NormalizeQuery lower-cases a free-text query for substring matching.
func NormalizeQuery(q string) string {
	return strings.ToLower(q)
}

func containsFold(field, q string) bool {
	return strings.Contains(strings.ToLower(field), q)
}
