package models

// ResolvedResult is the outcome of classifying a lookup response. It is a
// closed sum: Exact, Multiple and NotFound are the only implementations, so a
// type switch over the three variants is exhaustive.
type ResolvedResult interface {
	// Outcome returns the stable tag used for JSON and metrics.
	Outcome() Outcome
	sealed()
}

// Outcome is the wire tag of a ResolvedResult variant.
type Outcome string

const (
	OutcomeExact    Outcome = "exact"
	OutcomeMultiple Outcome = "multiple"
	OutcomeNotFound Outcome = "notFound"
)

// Exact carries the single item the lookup matched unambiguously.
type Exact struct {
	Context Context
	Trigger Trigger
	Input   string
	Item    LookupItem
}

// Multiple carries every candidate item, in the order the lookup service
// ranked them. Items is never empty.
type Multiple struct {
	Context Context
	Trigger Trigger
	Input   string
	Items   []LookupItem
}

// NotFound records a query that matched nothing.
type NotFound struct {
	Context Context
	Trigger Trigger
	Input   string
}

func (Exact) Outcome() Outcome    { return OutcomeExact }
func (Multiple) Outcome() Outcome { return OutcomeMultiple }
func (NotFound) Outcome() Outcome { return OutcomeNotFound }

func (Exact) sealed()    {}
func (Multiple) sealed() {}
func (NotFound) sealed() {}
