package translation

import (
	"context"

	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/tweetlate/internal"
	"codeberg.org/snonux/tweetlate/internal/logging"
)

// CachingTranslator answers repeated requests from the in-memory cache and
// the optional persistent store before calling the backend
type CachingTranslator struct {
	next   Translator
	memory *TranslationCache
	store  Store
	log    logrus.FieldLogger
}

// NewCachingTranslator wraps next, store may be nil
func NewCachingTranslator(next Translator, store Store, log logrus.FieldLogger) *CachingTranslator {
	if log == nil {
		log = logging.Discard()
	}
	return &CachingTranslator{
		next:   next,
		memory: NewTranslationCache(),
		store:  store,
		log:    log,
	}
}

// Translate implements Translator
func (c *CachingTranslator) Translate(ctx context.Context, text, srcTag, tgtTag string) (string, error) {
	key := internal.CacheKey(srcTag, tgtTag, text)

	if cached, ok := c.memory.Get(key); ok {
		return cached, nil
	}

	if c.store != nil {
		cached, ok, err := c.store.Lookup(key)
		if err != nil {
			c.log.WithError(err).Warn("Translation cache lookup failed")
		} else if ok {
			c.memory.Add(key, cached)
			return cached, nil
		}
	}

	translation, err := c.next.Translate(ctx, text, srcTag, tgtTag)
	if err != nil {
		return "", err
	}

	c.memory.Add(key, translation)
	if c.store != nil {
		if err := c.store.Save(key, srcTag, tgtTag, translation); err != nil {
			c.log.WithError(err).Warn("Failed to persist translation")
		}
	}

	return translation, nil
}

// Cache returns the in-memory cache
func (c *CachingTranslator) Cache() *TranslationCache {
	return c.memory
}
