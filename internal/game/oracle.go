package game

import (
	"context"
	"strings"
)

// Oracle produces free-text decisions for player agents. Implementations
// wrap an external text-generation service; the engine only validates
// and falls back on whatever comes out. A call either returns or fails,
// and failures are never retried.
type Oracle interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ask queries the oracle under the game's call timeout. Any failure is
// logged and degrades to an empty string so the calling phase can apply
// its fallback policy.
func (g *Game) ask(ctx context.Context, prompt string, maxTokens int) string {
	if g.oracle == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, g.oracleTimeout)
	defer cancel()

	text, err := g.oracle.Generate(ctx, prompt, maxTokens)
	if err != nil {
		g.log.Printf("oracle error: %v", err)
		g.sink.RecordEvent("oracle_error", map[string]any{"prompt": prompt, "error": err.Error()})
		return ""
	}
	return strings.TrimSpace(text)
}
