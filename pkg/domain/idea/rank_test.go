package idea

import (
	"testing"
	"time"

	"github.com/compasshq/compass/pkg/domain/prioritization"
)

func intPtr(v int) *int { return &v }

func scoredIdea(id string, r, i, c, e, votes int, created time.Time) Idea {
	return Idea{
		ID:        id,
		Title:     id,
		Status:    StatusOpen,
		Priority:  prioritization.DefaultPriority(),
		Votes:     votes,
		CreatedAt: created,
		RICE: prioritization.RICEInputs{
			Reach:      intPtr(r),
			Impact:     intPtr(i),
			Confidence: intPtr(c),
			Effort:     intPtr(e),
		},
	}
}

func TestRank_ByScore(t *testing.T) {
	now := time.Now()
	a := scoredIdea("a", 5, 5, 5, 1, 0, now) // score 125
	b := scoredIdea("b", 1, 1, 1, 5, 0, now) // score 0.2

	ranked := Rank([]Idea{b, a})
	if ranked[0].ID != "a" || ranked[1].ID != "b" {
		t.Errorf("Rank() order = [%s %s], want [a b]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRank_UnscoredLast(t *testing.T) {
	now := time.Now()
	unscored := New("u", "p1", "u")
	scored := scoredIdea("s", 1, 1, 1, 5, 0, now) // score 0.2, still beats unscored

	ranked := Rank([]Idea{unscored, scored})
	if ranked[0].ID != "s" {
		t.Errorf("scored idea should rank above unscored, got %s first", ranked[0].ID)
	}
}

func TestRank_TieBrokenByVotes(t *testing.T) {
	now := time.Now()
	low := scoredIdea("low-votes", 3, 4, 5, 2, 10, now)  // score 30
	high := scoredIdea("high-votes", 3, 4, 5, 2, 20, now) // score 30

	ranked := Rank([]Idea{low, high})
	if ranked[0].ID != "high-votes" {
		t.Errorf("tie should be broken by votes desc, got %s first", ranked[0].ID)
	}
}

func TestRank_VotesDoNotOverrideScore(t *testing.T) {
	now := time.Now()
	strong := scoredIdea("strong", 5, 5, 5, 1, 0, now) // score 125
	popular := scoredIdea("popular", 1, 1, 1, 1, 99, now) // score 1

	ranked := Rank([]Idea{popular, strong})
	if ranked[0].ID != "strong" {
		t.Error("votes must only break ties, not override the score")
	}
}

func TestRank_TieBrokenByCreationTime(t *testing.T) {
	older := scoredIdea("older", 3, 4, 5, 2, 5, time.Now().Add(-time.Hour))
	newer := scoredIdea("newer", 3, 4, 5, 2, 5, time.Now())

	ranked := Rank([]Idea{older, newer})
	if ranked[0].ID != "newer" {
		t.Errorf("equal score and votes should rank newest first, got %s", ranked[0].ID)
	}
}

func TestRank_ZeroEffortTreatedAsUnscored(t *testing.T) {
	now := time.Now()
	broken := scoredIdea("broken", 5, 5, 5, 0, 0, now)
	ok := scoredIdea("ok", 1, 1, 1, 5, 0, now)

	ranked := Rank([]Idea{broken, ok})
	if ranked[0].ID != "ok" {
		t.Error("zero-effort idea must not outrank a scored idea")
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []Idea{
		scoredIdea("b", 1, 1, 1, 5, 0, now),
		scoredIdea("a", 5, 5, 5, 1, 0, now),
	}
	_ = Rank(in)
	if in[0].ID != "b" {
		t.Error("Rank() must not reorder its input slice")
	}
}

func TestIdea_Display(t *testing.T) {
	i := New("i1", "p1", "Dark mode")
	d := i.Display()
	if d.Scored() {
		t.Error("new idea should not be scored")
	}
	if d.Manual != prioritization.PriorityMedium {
		t.Errorf("Manual = %s, want medium default", d.Manual)
	}

	i.RICE = prioritization.RICEInputs{
		Reach: intPtr(3), Impact: intPtr(4), Confidence: intPtr(5), Effort: intPtr(2),
	}
	d = i.Display()
	if !d.Scored() || *d.RICE != 30 {
		t.Errorf("Display().RICE = %v, want 30", d.RICE)
	}
}

func TestStatus_CanPromote(t *testing.T) {
	tests := []struct {
		status Status
		can    bool
	}{
		{StatusOpen, false},
		{StatusUnderReview, true},
		{StatusPlanned, true},
		{StatusPromoted, false},
		{StatusArchived, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.CanPromote(); got != tt.can {
				t.Errorf("CanPromote() = %v, want %v", got, tt.can)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("planned"); err != nil {
		t.Errorf("ParseStatus(planned) error = %v", err)
	}
	if _, err := ParseStatus("rejected"); err == nil {
		t.Error("ParseStatus(rejected) expected error")
	}
}
