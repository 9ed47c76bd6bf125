package tutor

import "strings"

// MaxReplyWords is the hard ceiling on assistant replies. The instruction
// document asks the model to stay under it; CapWords is the guardrail for
// when it does not.
const MaxReplyWords = 150

// CapWords truncates text to MaxReplyWords whitespace-separated tokens,
// rejoined with single spaces. Idempotent; text at or under the cap is
// returned untouched.
func CapWords(text string) string {
	words := strings.Fields(text)
	if len(words) <= MaxReplyWords {
		return text
	}
	return strings.Join(words[:MaxReplyWords], " ")
}
