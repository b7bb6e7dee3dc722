package htmlform

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	formClass   string
	submitLabel string
	sanitizer   *bluemonday.Policy
}

const (
	defaultFormClass   = "frm-bldr"
	defaultSubmitLabel = "Submit"
)

// WithFormClass overrides the class attribute of the <form> element.
func WithFormClass(class string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(class); trimmed != "" {
			cfg.formClass = trimmed
		}
	}
}

// WithSubmitLabel overrides the default submit button label. A translator in
// the render options still takes precedence.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithSanitizer filters labels, titles and option captions through policy
// before they are written. Without a sanitizer authored markup is emitted as
// is.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

// WithDefaultSanitizer applies a shared bluemonday UGC policy, which keeps
// simple formatting tags such as <b> and <em> and strips scripts, handlers and
// unsafe URLs.
func WithDefaultSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitizer = defaultPolicy()
	}
}

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func defaultPolicy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.UGCPolicy()
	})
	return labelPolicy
}
