package httpform

import (
	"log/slog"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	defaultRoutePath      = "/form"
	defaultAuthoringPath  = "/form/container"
	defaultFormatParam    = "format"
	defaultFormRoot       = "frmb"
	defaultHashField      = render.DefaultHashField
	defaultMaxBodyBytes   = 1 << 20
	defaultThankYouMarkup = "<p class=\"frm-thanks\">Thank you, your submission has been received.</p>\n"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	AuthoringPath string
	FormatParam   string
	FormRoot      string
	HashField     string
	MaxBodyBytes  int64
	ThankYou      string
	Guard         GuardFunc

	Document        *document.Document
	DocumentOptions []document.Option
	Registry        *render.Registry
	Logger          *slog.Logger
	Translator      render.Translator
	Locale          string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		AuthoringPath: defaultAuthoringPath,
		FormatParam:   defaultFormatParam,
		FormRoot:      defaultFormRoot,
		HashField:     defaultHashField,
		MaxBodyBytes:  defaultMaxBodyBytes,
		ThankYou:      defaultThankYouMarkup,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.AuthoringPath == "" {
		opts.AuthoringPath = defaultAuthoringPath
	}
	if opts.FormatParam == "" {
		opts.FormatParam = defaultFormatParam
	}
	if opts.FormRoot == "" {
		opts.FormRoot = defaultFormRoot
	}
	if opts.HashField == "" {
		opts.HashField = defaultHashField
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.ThankYou == "" {
		opts.ThankYou = defaultThankYouMarkup
	}
	if opts.DocumentOptions != nil {
		opts.DocumentOptions = append([]document.Option{}, opts.DocumentOptions...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithAuthoringPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AuthoringPath = path
	}
}

func WithFormatParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormatParam = name
	}
}

// WithFormRoot sets the parameter name the authoring tool nests posted fields
// under (frmb[0][cssClass]=...).
func WithFormRoot(root string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FormRoot = root
	}
}

// WithHashField names the hidden input that carries the document hash.
func WithHashField(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HashField = name
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithThankYou replaces the HTML fragment written after a successful
// browser submission.
func WithThankYou(markup string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThankYou = markup
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithDocument(doc *document.Document) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Document = doc
	}
}

// WithDocumentOptions forwards loader options (hasher, logger) to containers
// built or verified by the authoring handler.
func WithDocumentOptions(options ...document.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DocumentOptions = append(o.DocumentOptions, options...)
	}
}

func WithRegistry(registry *render.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithTranslator localises the submit label and validation messages.
func WithTranslator(t render.Translator, locale string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Translator = t
		o.Locale = locale
	}
}
