// Package prioritization provides the RICE/WSJF scoring engine used to rank
// product ideas.
package prioritization

import "errors"

// ErrZeroEffort is returned when a RICE computation is attempted with an
// effort of zero. The score must fail fast rather than propagate Inf/NaN
// into ranking and display.
var ErrZeroEffort = errors.New("effort must be greater than zero")

// RICEInputs holds the four RICE sub-scores for an idea. A nil field means
// the sub-score has not been provided yet. Each value is expected to be in
// [1,5]; out-of-range values are not rejected here, input validation is the
// caller's responsibility.
type RICEInputs struct {
	Reach      *int `json:"reach,omitempty" yaml:"reach,omitempty"`
	Impact     *int `json:"impact,omitempty" yaml:"impact,omitempty"`
	Confidence *int `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Effort     *int `json:"effort,omitempty" yaml:"effort,omitempty"`
}

// Complete returns true if all four sub-scores are present.
func (in RICEInputs) Complete() bool {
	return in.Reach != nil && in.Impact != nil && in.Confidence != nil && in.Effort != nil
}

// ComputeRICE calculates (reach * impact * confidence) / effort.
//
// A nil result with a nil error means the score is not yet computable because
// one or more sub-scores are missing. "Not yet scored" is a distinct state
// from a score of zero. No rounding is applied; formatting is a presentation
// concern.
func ComputeRICE(in RICEInputs) (*float64, error) {
	if !in.Complete() {
		return nil, nil
	}
	if *in.Effort == 0 {
		return nil, ErrZeroEffort
	}
	score := float64(*in.Reach**in.Impact**in.Confidence) / float64(*in.Effort)
	return &score, nil
}
