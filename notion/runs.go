package notion

// RunProps is the set of inline formatting properties applying to one run.
type RunProps struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Color         string `json:"color,omitempty"`
	Link          string `json:"link,omitempty"`
}

// TextRun is a contiguous span of text sharing one property set.
type TextRun struct {
	Text  string   `json:"text"`
	Props RunProps `json:"props,omitempty"`
}

// MergeRuns merges adjacent runs with identical property sets and drops
// empty fragments. Empty input yields a single empty run so every
// text-bearing block always has at least one run.
func MergeRuns(runs []TextRun) []TextRun {
	merged := make([]TextRun, 0, len(runs))
	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].Props == run.Props {
			merged[n-1].Text += run.Text
			continue
		}
		merged = append(merged, run)
	}
	if len(merged) == 0 {
		return []TextRun{{}}
	}
	return merged
}
