package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init builds the bundle from the embedded locales. Safe to call more than once.
func Init() {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, name := range []string{"locales/active.en.json", "locales/active.es.json"} {
		if _, err := b.LoadMessageFileFS(locales, name); err != nil {
			panic(err)
		}
	}

	mu.Lock()
	bundle = b
	mu.Unlock()
}

// Load adds an external message file on top of the embedded ones.
func Load(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		return errNotInitialized
	}
	_, err := bundle.LoadMessageFile(path)
	return err
}

// Translate localizes messageID for the accept-language value lang. It returns
// "" when the message is unknown so callers can fall back to their own text.
func Translate(lang, messageID string, data map[string]interface{}) string {
	mu.RLock()
	b := bundle
	mu.RUnlock()
	if b == nil || messageID == "" {
		return ""
	}

	loc := goi18n.NewLocalizer(b, lang)
	msg, err := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return ""
	}
	return msg
}
