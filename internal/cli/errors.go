package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type invalidIDError struct {
	kind  string
	value string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid %s id: %q", e.kind, e.value)
}

type confirmRequiredError struct {
	prompt string
}

func (e confirmRequiredError) Error() string {
	return e.prompt + " (pass --yes to confirm)"
}

func errConfirmRequired(prompt string) error {
	return confirmRequiredError{prompt: prompt}
}

// parseID accepts a numeric id, or MTG-<id> for meetings.
func parseID(kind, s string) (int64, error) {
	v := strings.TrimSpace(s)
	if kind == "meeting" {
		if rest, ok := cutPrefixFold(v, "MTG-"); ok {
			v = rest
		}
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidIDError{kind: kind, value: s}
	}
	return id, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
