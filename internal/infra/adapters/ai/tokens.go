package ai

import (
	"github.com/pkoukk/tiktoken-go"

	"marvel-tutor/internal/domain/ports/adapter"
)

// countPromptTokens estimates prompt tokens with tiktoken. Best-effort: an
// unknown model falls back to cl100k_base, and the per-message overhead is
// the fixed 4-token framing used by the chat format.
func countPromptTokens(model string, messages []adapter.Message) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0, err
		}
	}
	n := 0
	for _, m := range messages {
		n += len(enc.Encode(m.Content, nil, nil)) + 4
	}
	return n, nil
}
