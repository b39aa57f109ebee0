package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds the message catalog for every loaded language
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var defaultBundle *Bundle

func init() {
	var err error
	defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
	if err != nil {
		panic("failed to load embedded locales: " + err.Error())
	}
}

// Default returns the bundle built from the embedded locales
func Default() *Bundle {
	return defaultBundle
}

// NewEmptyBundle returns a bundle without translations, defaulting to English
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads every <lang>.json file found in dir. The default
// language must be present and every other language must translate all of its
// keys.
func NewBundleWithFS(fs embed.FS, dir string) (*Bundle, error) {
	b := NewEmptyBundle()

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}

		data, err := fs.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, err
		}
		if err := b.AddLanguage(lang, translations); err != nil {
			return nil, err
		}
	}

	if _, ok := b.translations[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}
	for lang := range b.translations {
		if err := b.validate(lang); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// AddLanguage adds translations for lang, merging with any existing ones
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	merged := make(map[string]string, len(translations))
	for k, v := range b.translations[lang] {
		merged[k] = v
	}
	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFailedToSetString, key, err)
		}
		merged[key] = value
	}

	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))
	return nil
}

func (b *Bundle) validate(lang language.Tag) error {
	if lang == b.defaultLang {
		return nil
	}
	for key := range b.translations[b.defaultLang] {
		if _, ok := b.translations[lang][key]; !ok {
			return fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key)
		}
	}
	return nil
}

// T returns the translation for key in the default language
func (b *Bundle) T(key string, args ...interface{}) string {
	b.mu.RLock()
	lang := b.defaultLang
	b.mu.RUnlock()

	return b.TL(lang, key, args...)
}

// TL returns the translation for key in lang, falling back to the default
// language and finally to the key itself
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.translations[lang][key]; ok {
		return b.printers[lang].Sprintf(key, args...)
	}
	if _, ok := b.translations[b.defaultLang][key]; ok {
		return b.printers[b.defaultLang].Sprintf(key, args...)
	}
	return key
}

// Message returns the unformatted translation for key in lang
func (b *Bundle) Message(lang language.Tag, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msg, ok := b.translations[lang][key]
	return msg, ok
}

// HasKey checks if a key exists in a language
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	_, ok := b.Message(lang, key)
	return ok
}

// SetDefaultLanguage sets the default language
func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultLang = lang
}

// DefaultLanguage returns the default language
func (b *Bundle) DefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.defaultLang
}

// Languages returns a list of supported languages
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})
	return langs
}
