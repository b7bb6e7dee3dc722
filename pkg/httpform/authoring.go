package httpform

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// VerifyResponse is written by the authoring handler after checking a
// stored container.
type VerifyResponse struct {
	Status   string `json:"status"`
	FormHash string `json:"form_hash,omitempty"`
	Fields   int    `json:"fields,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewAuthoringHandler accepts structures from the authoring tool. POST takes
// a structure (JSON, YAML, or the tool's bracketed form encoding) and answers
// with the sealed container. PUT takes a container and reports whether its
// hash still matches.
func NewAuthoringHandler(fns ...OptionFn) http.Handler {
	return AuthoringHandlerWithOptions(NewOptions(fns...))
}

// AuthoringHandlerWithOptions builds the authoring handler from a
// pre-constructed Options value.
func AuthoringHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &authoringHandler{opts: opts}
}

type authoringHandler struct {
	opts Options
}

func (h *authoringHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	switch r.Method {
	case http.MethodPost:
		h.seal(w, r)
	case http.MethodPut:
		h.verify(w, r)
	default:
		w.Header().Set("Allow", http.MethodPost+", "+http.MethodPut)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *authoringHandler) seal(w http.ResponseWriter, r *http.Request) {
	structure, err := h.readStructure(r)
	if err != nil {
		writeStatusError(w, h.opts.Logger, r, err)
		return
	}

	doc := document.FromStructure(structure, h.opts.DocumentOptions...)
	if h.opts.Logger != nil {
		h.opts.Logger.Info("form structure sealed",
			"hash", doc.Hash(),
			"fields", len(structure),
		)
	}
	writeJSON(w, http.StatusCreated, doc.Container())
}

func (h *authoringHandler) verify(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeStatusError(w, h.opts.Logger, r, bodyError(err))
		return
	}

	result := document.LoadContainerJSON(body, h.opts.DocumentOptions...)
	if !result.Loaded() {
		resp := VerifyResponse{Status: result.Status.String()}
		if result.Reason != nil {
			resp.Error = result.Reason.Error()
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{
		Status:   result.Status.String(),
		FormHash: result.Document.Hash(),
		Fields:   len(result.Document.Structure()),
	})
}

func (h *authoringHandler) readStructure(r *http.Request) (model.Structure, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		structure model.Structure
		err       error
	)
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		posted, perr := postedValues(r, h.opts.MaxBodyBytes)
		if perr != nil {
			return nil, bodyError(perr)
		}
		structure, err = model.ParseForm(posted, h.opts.FormRoot)
	default:
		body, rerr := io.ReadAll(r.Body)
		if rerr != nil {
			return nil, bodyError(rerr)
		}
		structure, err = model.ParseStructure(body)
	}

	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, model.ErrNotList) {
			code = http.StatusUnprocessableEntity
		}
		return nil, StatusError{Code: code, Err: err}
	}
	return structure, nil
}
