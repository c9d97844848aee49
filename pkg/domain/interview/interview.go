// Package interview records customer interviews and the insights that feed
// idea prioritization.
package interview

import (
	"fmt"
	"time"
)

// Sentiment classifies an insight.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// IsValid returns true if the sentiment is a known value.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sentiment.
func (s Sentiment) String() string {
	return string(s)
}

// ParseSentiment parses a string into a Sentiment.
func ParseSentiment(str string) (Sentiment, error) {
	s := Sentiment(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid sentiment: %s", str)
	}
	return s, nil
}

// Insight is a single takeaway from an interview, optionally linked to the
// ideas it is evidence for.
type Insight struct {
	Text      string    `json:"text" yaml:"text"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	IdeaIDs   []string  `json:"idea_ids,omitempty" yaml:"idea_ids,omitempty"`
}

// Interview is a recorded customer conversation.
type Interview struct {
	ID          string    `json:"id" yaml:"id"`
	ProductID   string    `json:"product_id" yaml:"product_id"`
	Customer    string    `json:"customer" yaml:"customer"`
	Interviewer string    `json:"interviewer,omitempty" yaml:"interviewer,omitempty"`
	ConductedAt time.Time `json:"conducted_at" yaml:"conducted_at"`
	Notes       string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Insights    []Insight `json:"insights,omitempty" yaml:"insights,omitempty"`
}

// InsightsFor returns the insights referencing a given idea.
func (iv Interview) InsightsFor(ideaID string) []Insight {
	var matched []Insight
	for _, in := range iv.Insights {
		for _, id := range in.IdeaIDs {
			if id == ideaID {
				matched = append(matched, in)
				break
			}
		}
	}
	return matched
}

// EvidenceCount counts, across a set of interviews, how many insights
// reference each idea. Ideas with more customer evidence typically earn
// higher reach and confidence sub-scores.
func EvidenceCount(interviews []Interview) map[string]int {
	counts := make(map[string]int)
	for _, iv := range interviews {
		for _, in := range iv.Insights {
			for _, id := range in.IdeaIDs {
				counts[id]++
			}
		}
	}
	return counts
}
