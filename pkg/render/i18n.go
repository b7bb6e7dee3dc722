package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale. Implementations typically
// wrap an i18n catalogue; args follow fmt conventions.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides the string used when a key cannot be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// TranslatorFunc adapts a plain function to the Translator interface.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// Message keys for the fixed strings produced by the renderers and validator.
const (
	MessageSubmitLabel      = "formbuilder.submit"
	MessageRequiredField    = "formbuilder.validation.required"
	MessageRequiredCheckbox = "formbuilder.validation.checkbox"
)

// Translate resolves key through t, falling back to fmt.Sprintf(fallback,
// args...) when the translator is missing, fails or returns an empty string.
func Translate(t Translator, locale, key, fallback string, args ...any) string {
	return TranslateWith(t, nil, locale, key, fallback, args...)
}

// TranslateWith behaves like Translate but routes misses through onMissing
// when one is supplied.
func TranslateWith(t Translator, onMissing MissingTranslationHandler, locale, key, fallback string, args ...any) string {
	key = strings.TrimSpace(key)
	if t != nil && key != "" {
		msg, err := t.Translate(locale, key, args...)
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
		if onMissing != nil {
			return onMissing(locale, key, args, err)
		}
	} else if onMissing != nil && key != "" {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	if len(args) == 0 {
		return fallback
	}
	return fmt.Sprintf(fallback, args...)
}
