package translation

// TranslationCache stores translations in memory for the current run
type TranslationCache struct {
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(key, translation string) {
	tc.translations[key] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(key string) (string, bool) {
	translation, ok := tc.translations[key]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	return len(tc.translations)
}

// GetAll returns all cached translations
func (tc *TranslationCache) GetAll() map[string]string {
	// Return a copy to prevent external modification
	result := make(map[string]string, len(tc.translations))
	for k, v := range tc.translations {
		result[k] = v
	}
	return result
}
