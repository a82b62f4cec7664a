package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
	once   sync.Once
)

// Init builds the bundle with the embedded en and id messages. Safe to call
// more than once.
func Init() {
	once.Do(func() {
		b := goi18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)
		for _, name := range []string{"locales/active.en.json", "locales/active.id.json"} {
			if _, err := b.LoadMessageFileFS(localeFS, name); err != nil {
				panic(err)
			}
		}
		mu.Lock()
		bundle = b
		mu.Unlock()
	})
}

// Load merges an extra message file (e.g. a deployment override) into the
// bundle. The language tag is taken from the file name: active.<tag>.json.
func Load(path string) error {
	Init()
	mu.Lock()
	defer mu.Unlock()
	_, err := bundle.LoadMessageFile(path)
	return err
}

// Localize renders messageID for the languages in an Accept-Language header.
// fallback is returned when no translation exists.
func Localize(acceptLanguage, messageID, fallback string) string {
	Init()
	mu.RLock()
	defer mu.RUnlock()

	loc := goi18n.NewLocalizer(bundle, acceptLanguage)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:      messageID,
		DefaultMessage: &goi18n.Message{ID: messageID, Other: fallback},
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
