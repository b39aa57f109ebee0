package i18n

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error that can be translated
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
}

// MessageProvider defines an interface for getting default messages
type MessageProvider interface {
	GetMessage(key string) string
}

// MessageFormatter is implemented by providers which format arguments
// themselves, for example with locale-aware number formatting
type MessageFormatter interface {
	Format(key string, args ...interface{}) string
}

// TrError is a keyed error with optional format arguments and a wrapped
// cause. Copies made by WithArgs and Wrap still match the original with
// errors.Is.
type TrError struct {
	sentinel error
	key      string
	args     []interface{}
	wrapped  error
}

// BundleMessageProvider implements MessageProvider using a Bundle
type BundleMessageProvider struct {
	bundle *Bundle
	lang   language.Tag
}

// NewBundleMessageProvider returns a provider for the bundle's default language
func NewBundleMessageProvider(b *Bundle) *BundleMessageProvider {
	return &BundleMessageProvider{bundle: b, lang: b.DefaultLanguage()}
}

func (p *BundleMessageProvider) GetMessage(key string) string {
	if msg, ok := p.bundle.Message(p.lang, key); ok {
		return msg
	}
	if msg, ok := p.bundle.Message(language.English, key); ok {
		return msg
	}
	return key
}

// Format renders key with args through the bundle's message printer for the
// provider's language, falling back to English
func (p *BundleMessageProvider) Format(key string, args ...interface{}) string {
	for _, lang := range []language.Tag{p.lang, language.English} {
		if p.bundle.HasKey(lang, key) {
			return p.bundle.TL(lang, key, args...)
		}
	}
	return key
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
	}
}

// Error returns the message for the current provider, formatted with args if provided
func (e *TrError) Error() string {
	provider := getDefaultProvider()
	var msg string
	switch f, ok := provider.(MessageFormatter); {
	case len(e.args) == 0:
		msg = provider.GetMessage(e.key)
	case ok:
		msg = f.Format(e.key, e.args...)
	default:
		msg = fmt.Sprintf(provider.GetMessage(e.key), e.args...)
	}

	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     args,
		wrapped:  e.wrapped,
	}
}

// Wrap returns a new error that wraps another error
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  err,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}
	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider replaces the provider used to render every TrError
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	p := defaultProvider
	defaultProviderMux.RUnlock()
	if p != nil {
		return p
	}
	return NewBundleMessageProvider(Default())
}
