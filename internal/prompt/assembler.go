// Package prompt renders the instruction sent to the completion service for
// a user question. Rendering is pure: the same question, ranked chunks, and
// coaching settings always produce the same string.
package prompt

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// Section headers and fixed phrases of the rendered instruction.
const (
	preamble = "You are a personalized AI coach. You know the user's personal values, " +
		"goals, and preferred communication style, and you draw on their own notes " +
		"to give guidance that fits them."

	headerPrinciples  = "ALIGNMENT PRINCIPLES:"
	headerStyle       = "COMMUNICATION STYLE:"
	headerPersonality = "RESPONSE PERSONALITY:"
	headerKnowledge   = "RELEVANT KNOWLEDGE:"

	noTraits = "- No specific traits selected"

	// KnowledgeDelimiter separates chunk sections in the knowledge block.
	KnowledgeDelimiter = "\n\n---\n\n"

	closing = "Answer honestly, in line with the user's alignment principles and " +
		"communication preferences. Refer to their documents where relevant, and " +
		"say so when they do not cover the question."
)

// Assemble renders the completion instruction. Sections appear in a fixed
// order: role preamble, alignment principles, communication style, response
// personality, relevant knowledge, and finally the question with the closing
// instruction. The knowledge block is left out entirely when chunks is empty.
func Assemble(question string, chunks []domain.Chunk, s domain.CoachingSettings) string {
	var b strings.Builder

	// 1) Role
	b.WriteString(preamble)
	b.WriteString("\n\n")

	// 2) Principles, in insertion order
	b.WriteString(headerPrinciples)
	b.WriteByte('\n')
	for i, p := range s.AlignmentPrinciples {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	b.WriteByte('\n')

	// 3) Style
	cs := s.CommunicationStyle
	b.WriteString(headerStyle)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "- Directness: %d/10 (be %s)\n", cs.DirectnessLevel, DirectnessBand(cs.DirectnessLevel))
	fmt.Fprintf(&b, "- Challenge approach: %d/10 (%s)\n", cs.ChallengeApproach, ChallengeBand(cs.ChallengeApproach))
	fmt.Fprintf(&b, "- Support style: %s\n", cs.SupportStyle)
	fmt.Fprintf(&b, "- Feedback method: %s\n", cs.FeedbackMethod)
	b.WriteByte('\n')

	// 4) Personality
	b.WriteString(headerPersonality)
	b.WriteByte('\n')
	traits := EnabledTraits(s.ResponsePersonality)
	if len(traits) == 0 {
		b.WriteString(noTraits)
		b.WriteByte('\n')
	}
	for _, t := range traits {
		b.WriteString("- ")
		b.WriteString(t)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	// 5) Knowledge
	if len(chunks) > 0 {
		b.WriteString(headerKnowledge)
		b.WriteByte('\n')
		sections := make([]string, len(chunks))
		for i, c := range chunks {
			sections[i] = fmt.Sprintf("Document \"%s\" (Section %d):\n%s", c.Filename, i+1, c.Content)
		}
		b.WriteString(strings.Join(sections, KnowledgeDelimiter))
		b.WriteString("\n\n")
	}

	// 6) Question
	fmt.Fprintf(&b, "QUESTION: \"%s\"\n\n", question)
	b.WriteString(closing)
	return b.String()
}

// DirectnessBand maps a directness level onto its qualitative band.
func DirectnessBand(level int) string {
	switch {
	case level > 7:
		return "very direct"
	case level > 4:
		return "moderately direct"
	default:
		return "gentle"
	}
}

// ChallengeBand maps a challenge level onto its qualitative band.
func ChallengeBand(level int) string {
	switch {
	case level > 7:
		return "strongly challenge"
	case level > 4:
		return "gently question"
	default:
		return "supportive"
	}
}

// EnabledTraits returns the display names of the traits set to true, in
// sorted key order.
func EnabledTraits(traits map[string]bool) []string {
	keys := make([]string, 0, len(traits))
	for k, on := range traits {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = HumanizeTrait(k)
	}
	return out
}

// HumanizeTrait expands a camelCase trait name into capitalized words:
// "emotionallyAware" becomes "Emotionally Aware".
func HumanizeTrait(name string) string {
	var words []string
	var cur []rune
	for _, r := range name {
		if unicode.IsUpper(r) && len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}
	caser := cases.Title(language.English)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
