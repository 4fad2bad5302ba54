package form

import "strings"

// SubmittedData maps the labels echoed by the form endpoint to their values.
type SubmittedData map[string]string

// ParseSubmitted turns a "Label: value" block into SubmittedData. Lines
// without a colon are dropped, the first colon separates label from value,
// both sides are trimmed and a repeated label keeps its last value. The
// result is never nil.
func ParseSubmitted(text string) SubmittedData {
	data := make(SubmittedData)
	for _, line := range strings.Split(text, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		data[strings.TrimSpace(label)] = strings.TrimSpace(value)
	}
	return data
}

// Lookup returns the value for label and whether it was present.
func (d SubmittedData) Lookup(label string) (string, bool) {
	v, ok := d[label]
	return v, ok
}
