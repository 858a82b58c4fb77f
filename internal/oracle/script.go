package oracle

import (
	"context"
	"strings"
)

// Rule maps a prompt fragment to a canned reply.
type Rule struct {
	Contains string
	Reply    string
}

// Script is a deterministic offline generator for dry runs: the first
// rule whose fragment appears in the prompt wins, otherwise Fallback.
// An unmatched prompt with an empty Fallback exercises the engine's
// fallback policy end to end.
type Script struct {
	Rules    []Rule
	Fallback string
}

func (s *Script) Generate(_ context.Context, prompt string, _ int) (string, error) {
	for _, r := range s.Rules {
		if strings.Contains(prompt, r.Contains) {
			return r.Reply, nil
		}
	}
	return s.Fallback, nil
}
