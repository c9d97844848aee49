package prioritization

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestComputeRICE(t *testing.T) {
	tests := []struct {
		name   string
		inputs RICEInputs
		want   float64
	}{
		{"all max effort one", RICEInputs{intPtr(5), intPtr(5), intPtr(5), intPtr(1)}, 125},
		{"all min effort max", RICEInputs{intPtr(1), intPtr(1), intPtr(1), intPtr(5)}, 0.2},
		{"mixed", RICEInputs{intPtr(3), intPtr(4), intPtr(5), intPtr(2)}, 30},
		{"out of range propagates", RICEInputs{intPtr(10), intPtr(2), intPtr(1), intPtr(4)}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRICE(tt.inputs)
			if err != nil {
				t.Fatalf("ComputeRICE() error = %v", err)
			}
			if got == nil {
				t.Fatal("ComputeRICE() = nil, want score")
			}
			if *got != tt.want {
				t.Errorf("ComputeRICE() = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestComputeRICE_MissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		inputs RICEInputs
	}{
		{"all missing", RICEInputs{}},
		{"missing reach", RICEInputs{nil, intPtr(2), intPtr(3), intPtr(4)}},
		{"missing impact", RICEInputs{intPtr(1), nil, intPtr(3), intPtr(4)}},
		{"missing confidence", RICEInputs{intPtr(1), intPtr(2), nil, intPtr(4)}},
		{"missing effort", RICEInputs{intPtr(1), intPtr(2), intPtr(3), nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeRICE(tt.inputs)
			if err != nil {
				t.Fatalf("ComputeRICE() error = %v, want nil", err)
			}
			if got != nil {
				t.Errorf("ComputeRICE() = %v, want nil for incomplete inputs", *got)
			}
		})
	}
}

func TestComputeRICE_ZeroEffort(t *testing.T) {
	_, err := ComputeRICE(RICEInputs{intPtr(5), intPtr(5), intPtr(5), intPtr(0)})
	if !errors.Is(err, ErrZeroEffort) {
		t.Fatalf("ComputeRICE() error = %v, want ErrZeroEffort", err)
	}
}

func TestComputeRICE_Deterministic(t *testing.T) {
	in := RICEInputs{intPtr(3), intPtr(4), intPtr(5), intPtr(2)}
	first, err := ComputeRICE(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ComputeRICE(in)
	if err != nil {
		t.Fatal(err)
	}
	if *first != *second {
		t.Errorf("ComputeRICE() not deterministic: %v != %v", *first, *second)
	}

	// Idempotent for nil-producing inputs too.
	a, _ := ComputeRICE(RICEInputs{})
	b, _ := ComputeRICE(RICEInputs{})
	if a != nil || b != nil {
		t.Error("incomplete inputs should always yield nil")
	}
}

func TestRICEInputs_Complete(t *testing.T) {
	if (RICEInputs{intPtr(1), intPtr(1), intPtr(1), nil}).Complete() {
		t.Error("Complete() = true with missing effort")
	}
	if !(RICEInputs{intPtr(1), intPtr(1), intPtr(1), intPtr(1)}).Complete() {
		t.Error("Complete() = false with all inputs present")
	}
}
