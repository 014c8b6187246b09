package gemini

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hackerpeanutjohn/RainDigest/internal/domain/entity"
)

// parseCues decodes the model's JSON cue list, tolerating markdown code
// fences the model sometimes wraps around it.
func parseCues(raw string) ([]entity.VisualCue, error) {
	cleaned := stripCodeFence(raw)

	var cues []entity.VisualCue
	if err := json.Unmarshal([]byte(cleaned), &cues); err != nil {
		return nil, fmt.Errorf("parse cue json: %w", err)
	}
	return cues, nil
}

// stripCodeFence unwraps ```json ... ``` or ``` ... ``` blocks.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+len("```"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// truncateRunes caps prompt material at n runes. Byte slicing would cut
// multibyte sequences in half, and the transcripts here are mostly CJK.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// parseCollectionID extracts the classifier's answer: the digits of the
// response, with 0 (or nothing) meaning "no suitable collection".
func parseCollectionID(raw string) (int64, error) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, nil
	}

	id, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse collection id %q: %w", digits.String(), err)
	}
	return id, nil
}
