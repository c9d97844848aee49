package prioritization

import "errors"

// ErrZeroJobSize is returned when a WSJF computation is attempted with a job
// size of zero.
var ErrZeroJobSize = errors.New("job size must be greater than zero")

// WSJFInputs holds the two WSJF factors for an idea. A nil field means the
// factor has not been estimated yet.
type WSJFInputs struct {
	CostOfDelay *int `json:"cost_of_delay,omitempty" yaml:"cost_of_delay,omitempty"`
	JobSize     *int `json:"job_size,omitempty" yaml:"job_size,omitempty"`
}

// Complete returns true if both factors are present.
func (in WSJFInputs) Complete() bool {
	return in.CostOfDelay != nil && in.JobSize != nil
}

// ComputeWSJF calculates cost-of-delay / job-size with the same missing-input
// and zero-divisor semantics as ComputeRICE: a nil result means not yet
// estimated, a zero job size fails fast.
func ComputeWSJF(in WSJFInputs) (*float64, error) {
	if !in.Complete() {
		return nil, nil
	}
	if *in.JobSize == 0 {
		return nil, ErrZeroJobSize
	}
	score := float64(*in.CostOfDelay) / float64(*in.JobSize)
	return &score, nil
}
