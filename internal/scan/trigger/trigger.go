// Package trigger decides whether a keystroke submits the current scan buffer.
package trigger

import "scanid/internal/scan/models"

// DefaultTabSubmitMinLength guards against manual tabbing between fields
// being mistaken for a scanner terminator.
const DefaultTabSubmitMinLength = 4

// Key names as delivered by the input layer.
const (
	KeyEnter = "Enter"
	KeyTab   = "Tab"
)

// Classify maps a keystroke and the normalized buffer to a submit trigger.
//
// Enter always submits, even with an empty buffer; acting on an empty
// submission is the caller's decision. Tab submits only when the surface
// supports tab submission and the buffer has reached the minimum length,
// because scanner hardware frequently emits Tab as a terminator while humans
// tab between fields with short or empty buffers. Every other key is plain
// input.
func Classify(key, normalizedValue string, supportsTabSubmit bool, tabSubmitMinLength int) models.Trigger {
	if tabSubmitMinLength <= 0 {
		tabSubmitMinLength = DefaultTabSubmitMinLength
	}

	switch key {
	case KeyEnter:
		return models.TriggerEnter
	case KeyTab:
		if supportsTabSubmit && len(normalizedValue) >= tabSubmitMinLength {
			return models.TriggerTab
		}
	}
	return models.TriggerNone
}
