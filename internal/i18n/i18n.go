// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLocale is the only catalog the storefront ships.
const DefaultLocale = "en"

type I18n struct {
	mu           sync.RWMutex
	translations map[string]string
}

var instance *I18n
var once sync.Once

func Initialize() error {
	var err error
	once.Do(func() {
		instance = &I18n{translations: make(map[string]string)}
		err = instance.LoadTranslations(DefaultLocale)
	})
	return err
}

func (i *I18n) LoadTranslations(locale string) error {
	filePath := "locales/" + locale + ".json"
	data, err := localeFS.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read locale file %s: %w", filePath, err)
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("failed to unmarshal locale file %s: %w", filePath, err)
	}

	i.mu.Lock()
	i.translations = translations
	i.mu.Unlock()
	return nil
}

func (i *I18n) T(key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if text, exists := i.translations[key]; exists {
		if len(args) > 0 {
			return fmt.Sprintf(text, args...)
		}
		return text
	}

	// Return key if no translation found
	return key
}

// T translates key with the storefront catalog, initializing it on first use.
func T(key string, args ...interface{}) string {
	if err := Initialize(); err != nil || instance == nil {
		return key
	}
	return instance.T(key, args...)
}
