package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSettings wraps every CoachingSettings validation failure.
var ErrInvalidSettings = errors.New("invalid coaching settings")

// Bounds of the numeric communication-style levels.
const (
	MinStyleLevel = 1
	MaxStyleLevel = 10
)

// CommunicationStyle shapes how answers are phrased.
type CommunicationStyle struct {
	DirectnessLevel   int    `json:"directness_level"   yaml:"directness_level"`
	ChallengeApproach int    `json:"challenge_approach" yaml:"challenge_approach"`
	SupportStyle      string `json:"support_style"      yaml:"support_style"`
	FeedbackMethod    string `json:"feedback_method"    yaml:"feedback_method"`
}

// CoachingSettings is the user-editable configuration consumed by the prompt
// assembler. AlignmentPrinciples are rendered in insertion order;
// ResponsePersonality maps camelCase trait names to on/off.
type CoachingSettings struct {
	AlignmentPrinciples []string           `json:"alignment_principles" yaml:"alignment_principles"`
	CommunicationStyle  CommunicationStyle `json:"communication_style"  yaml:"communication_style"`
	ResponsePersonality map[string]bool    `json:"response_personality" yaml:"response_personality"`
}

// DefaultCoachingSettings returns the built-in default settings.
func DefaultCoachingSettings() CoachingSettings {
	return CoachingSettings{
		AlignmentPrinciples: []string{
			"Prioritize long-term growth over short-term comfort",
			"Act with integrity and honesty, especially with myself",
			"Invest in relationships that matter",
			"Protect my health as the foundation for everything else",
			"Keep learning and stay curious",
		},
		CommunicationStyle: CommunicationStyle{
			DirectnessLevel:   7,
			ChallengeApproach: 6,
			SupportStyle:      "Encouraging but honest",
			FeedbackMethod:    "Specific, actionable suggestions",
		},
		ResponsePersonality: map[string]bool{
			"emotionallyAware":     true,
			"practicalFocused":     true,
			"growthOriented":       true,
			"analyticallyRigorous": false,
			"humorous":             false,
		},
	}
}

// Validate checks the invariants of s: at least one non-blank principle and
// both style levels within [MinStyleLevel, MaxStyleLevel].
func (s CoachingSettings) Validate() error {
	if len(s.AlignmentPrinciples) == 0 {
		return fmt.Errorf("%w: at least one alignment principle is required", ErrInvalidSettings)
	}
	for i, p := range s.AlignmentPrinciples {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: alignment principle %d is blank", ErrInvalidSettings, i+1)
		}
	}
	cs := s.CommunicationStyle
	if cs.DirectnessLevel < MinStyleLevel || cs.DirectnessLevel > MaxStyleLevel {
		return fmt.Errorf("%w: directness_level must be between %d and %d", ErrInvalidSettings, MinStyleLevel, MaxStyleLevel)
	}
	if cs.ChallengeApproach < MinStyleLevel || cs.ChallengeApproach > MaxStyleLevel {
		return fmt.Errorf("%w: challenge_approach must be between %d and %d", ErrInvalidSettings, MinStyleLevel, MaxStyleLevel)
	}
	return nil
}

// Clone returns a deep copy of s.
func (s CoachingSettings) Clone() CoachingSettings {
	out := s
	out.AlignmentPrinciples = append([]string(nil), s.AlignmentPrinciples...)
	if s.ResponsePersonality != nil {
		out.ResponsePersonality = make(map[string]bool, len(s.ResponsePersonality))
		for k, v := range s.ResponsePersonality {
			out.ResponsePersonality[k] = v
		}
	}
	return out
}
