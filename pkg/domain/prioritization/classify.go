package prioritization

// DisplayPriority pairs the manually assigned priority with the computed RICE
// score. The two facets are presented side by side and never merged into a
// single rank: a unified ordering would be a product decision, not a rule
// this package can infer.
type DisplayPriority struct {
	Manual Priority `json:"manual"`
	RICE   *float64 `json:"rice,omitempty"`
}

// Classify builds the display priority for an idea. A nil score is carried
// through untouched so callers can render "not yet scored".
func Classify(manual Priority, rice *float64) DisplayPriority {
	if !manual.IsValid() {
		manual = DefaultPriority()
	}
	return DisplayPriority{Manual: manual, RICE: rice}
}

// Scored returns true if a RICE score is present.
func (d DisplayPriority) Scored() bool {
	return d.RICE != nil
}
