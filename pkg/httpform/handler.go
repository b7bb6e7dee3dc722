package httpform

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

var (
	// ErrNoDocument is reported when the handler has no loaded form.
	ErrNoDocument = errors.New("httpform: no form document loaded")
	// ErrStaleForm is reported when a submission carries the hash of a
	// different form than the one being served.
	ErrStaleForm = errors.New("httpform: submission was rendered from another form")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds the form handler with default options plus any overrides.
// It is an alias of NewHandler.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

// NewHandler serves the configured document: GET renders it (the format
// query parameter selects a renderer, html by default) and POST validates a
// url-encoded submission.
func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds the form handler from a pre-constructed Options
// value. Callers are expected to pass an Options value produced by NewOptions
// (or equivalent) so defaults/clamps are applied.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Registry == nil {
		opts.Registry = orchestrator.DefaultRegistry()
	}
	return &formHandler{opts: opts}
}

type formHandler struct {
	opts Options
}

func (h *formHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	if h.opts.Document == nil {
		h.writeError(w, r, StatusError{Code: http.StatusNotFound, Err: ErrNoDocument})
		return
	}

	if r.Method == http.MethodPost {
		h.submit(w, r)
		return
	}

	format := strings.TrimSpace(r.URL.Query().Get(h.opts.FormatParam))
	h.render(w, r, format, render.RenderOptions{}, http.StatusOK)
}

func (h *formHandler) render(w http.ResponseWriter, r *http.Request, format string, opts render.RenderOptions, status int) {
	if format == "" {
		format = "html"
	}
	renderer, err := h.opts.Registry.Get(format)
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusBadRequest, Err: err})
		return
	}

	doc := h.opts.Document
	opts.RequestPath = r.URL.Path
	opts.Hidden = render.MergeHiddenFields(opts.Hidden, render.HashField(h.opts.HashField, doc.Hash()))
	opts.Locale = h.opts.Locale
	opts.Translator = h.opts.Translator

	body, contentType, err := doc.Render(r.Context(), renderer, opts)
	if err != nil {
		h.writeError(w, r, StatusError{Code: http.StatusInternalServerError, Err: err})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (h *formHandler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)
	posted, err := postedValues(r, h.opts.MaxBodyBytes)
	if err != nil {
		h.writeError(w, r, bodyError(err))
		return
	}

	doc := h.opts.Document
	submission := model.SubmissionFromValues(posted)
	if submission == nil {
		submission = model.Submission{}
	}
	if hash, ok := submission.Lookup(h.opts.HashField); ok && hash != doc.Hash() {
		h.writeError(w, r, StatusError{Code: http.StatusConflict, Err: ErrStaleForm})
		return
	}
	delete(submission, h.opts.HashField)

	result := doc.Validate(submission, validation.WithTranslator(h.opts.Translator, h.opts.Locale))
	wantsJSON := acceptsJSON(r)

	if !result.Success {
		h.log(r, slog.LevelInfo, "form submission rejected",
			"path", r.URL.Path,
			"issues", len(result.Issues),
		)
		if wantsJSON {
			writeJSON(w, http.StatusUnprocessableEntity, result)
			return
		}
		h.render(w, r, "html", render.RenderOptions{
			Submission: submission,
			Errors:     result.Messages(),
		}, http.StatusUnprocessableEntity)
		return
	}

	h.log(r, slog.LevelDebug, "form submission accepted",
		"path", r.URL.Path,
		"values", len(result.Values),
	)
	if wantsJSON {
		writeJSON(w, http.StatusOK, result)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, h.opts.ThankYou)
}

func (h *formHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeStatusError(w, h.opts.Logger, r, err)
}

func (h *formHandler) log(r *http.Request, level slog.Level, msg string, args ...any) {
	if h.opts.Logger == nil {
		return
	}
	h.opts.Logger.Log(r.Context(), level, msg, args...)
}

func writeStatusError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	if logger != nil && r != nil {
		logger.Warn("form request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", code,
			"error", err,
		)
	}
	http.Error(w, err.Error(), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(value)
}

// postedValues parses an url-encoded or multipart body and returns its
// fields. File parts of a multipart body are ignored.
func postedValues(r *http.Request, maxMemory int64) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

func bodyError(err error) StatusError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
	}
	return StatusError{Code: http.StatusBadRequest, Err: err}
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
