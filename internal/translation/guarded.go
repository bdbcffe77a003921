package translation

import (
	"context"

	"codeberg.org/snonux/tweetlate/internal/guard"
)

// GuardedTranslator routes backend calls through a guard
type GuardedTranslator struct {
	next  Translator
	guard *guard.Guard
}

// NewGuardedTranslator wraps next with g
func NewGuardedTranslator(next Translator, g *guard.Guard) *GuardedTranslator {
	return &GuardedTranslator{next: next, guard: g}
}

// Translate implements Translator
func (g *GuardedTranslator) Translate(ctx context.Context, text, srcTag, tgtTag string) (string, error) {
	return g.guard.Do(ctx, func(ctx context.Context) (string, error) {
		return g.next.Translate(ctx, text, srcTag, tgtTag)
	})
}
