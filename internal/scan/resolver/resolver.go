// Package resolver classifies a lookup response into an exact, ambiguous or
// not-found outcome. It is a total function over valid lookup results; acting
// on the outcome (picker, toast, add-to-cart) belongs to the caller.
package resolver

import "scanid/internal/scan/models"

// Resolve maps a lookup result to exactly one outcome. Decision order, first
// match wins:
//
//  1. ExactMatch with exactly one item -> Exact. The length check guards
//     against a lookup that sets the flag incorrectly; Exact never carries
//     zero or multiple items.
//  2. Any items at all -> Multiple, preserving the lookup service's ranking.
//  3. Otherwise -> NotFound.
func Resolve(scanCtx models.Context, trig models.Trigger, query string, lookup models.LookupResult) models.ResolvedResult {
	if lookup.ExactMatch && len(lookup.Items) == 1 {
		return models.Exact{
			Context: scanCtx,
			Trigger: trig,
			Input:   query,
			Item:    lookup.Items[0],
		}
	}

	if len(lookup.Items) > 0 {
		return models.Multiple{
			Context: scanCtx,
			Trigger: trig,
			Input:   query,
			Items:   lookup.Items,
		}
	}

	return models.NotFound{
		Context: scanCtx,
		Trigger: trig,
		Input:   query,
	}
}
