package httpform

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func orderDocument() *document.Document {
	return document.FromStructure(testsupport.OrderForm())
}

func submissionBody(sub model.Submission, extra map[string]string) io.Reader {
	values := url.Values{}
	for key, value := range sub {
		values.Set(key, value)
	}
	for key, value := range extra {
		values.Set(key, value)
	}
	return strings.NewReader(values.Encode())
}

func postForm(t *testing.T, h http.Handler, body io.Reader, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/order", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PostMultipartSubmission(t *testing.T) {
	fields := map[string]string{}
	for key, value := range testsupport.CompleteOrder() {
		fields[key] = value
	}
	body, contentType := multipartBody(t, fields)

	h := NewHandler(WithDocument(orderDocument()))
	req := httptest.NewRequest(http.MethodPost, "/order", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, "Ada Lovelace", result.Values["full_name"])
}

func TestHandler_GetRendersHTMLWithHash(t *testing.T) {
	doc := orderDocument()
	h := NewHandler(WithDocument(doc))

	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))

	body := rec.Body.String()
	require.Contains(t, body, `<form class="frm-bldr" method="post" action="/order">`)
	require.Contains(t, body, `<input type="hidden" name="form_hash" value="`+doc.Hash()+`" />`)
	require.Contains(t, body, `id="fld-crust"`)
	require.NotContains(t, body, "signature")
}

func TestHandler_FormatParamSelectsRenderer(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	req := httptest.NewRequest(http.MethodGet, "/order?format=xml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	req = httptest.NewRequest(http.MethodGet, "/order?format=pdf", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HeadWritesNoBody(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	req := httptest.NewRequest(http.MethodHead, "/order", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, rec.Body.Len())
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	req := httptest.NewRequest(http.MethodDelete, "/order", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD, POST", rec.Header().Get("Allow"))
}

func TestHandler_NoDocument(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GuardRejects(t *testing.T) {
	h := NewHandler(
		WithDocument(orderDocument()),
		WithGuard(func(*http.Request) error {
			return StatusError{Code: http.StatusUnauthorized, Err: errors.New("no session")}
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "no session")
}

func TestHandler_SubmitSuccessHTML(t *testing.T) {
	doc := orderDocument()
	h := NewHandler(WithDocument(doc))

	rec := postForm(t, h, submissionBody(testsupport.CompleteOrder(), map[string]string{
		"form_hash": doc.Hash(),
	}), "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, defaultThankYouMarkup, rec.Body.String())
}

func TestHandler_SubmitSuccessJSON(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	rec := postForm(t, h, submissionBody(testsupport.CompleteOrder(), nil), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var result validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, "Ada Lovelace", result.Values["full_name"])
	require.NotContains(t, result.Values, "form_hash")
	require.Empty(t, result.Issues)
}

func TestHandler_SubmitFailureRerendersForm(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	sub := testsupport.CompleteOrder()
	sub["full_name"] = ""
	sub["delivery_notes"] = "Ring <twice>"
	rec := postForm(t, h, submissionBody(sub, nil), "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<ul class=\"frm-errors\">\n<li>Please complete the Full Name field.</li>\n</ul>\n")
	require.Contains(t, body, "Ring &lt;twice&gt;</textarea>")
	// radio state follows group presence once a submission exists
	require.Contains(t, body, `value="Small" checked="checked"`)
	require.Contains(t, body, `value="Large" checked="checked"`)
	require.Contains(t, body, `id="toppings-cheese" name="toppings-cheese" value="Cheese" />`)
}

func TestHandler_SubmitFailureJSON(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	rec := postForm(t, h, strings.NewReader(""), "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var result validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.False(t, result.Success)
	require.Equal(t, []string{
		"Please complete the Full Name field.",
		"Please check at least one Toppings choice.",
		"Please complete the Crust field.",
	}, result.Messages())
}

func TestHandler_StaleHashConflicts(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()))

	rec := postForm(t, h, submissionBody(testsupport.CompleteOrder(), map[string]string{
		"form_hash": "0000000000000000000000000000000000000000",
	}), "")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), ErrStaleForm.Error())
}

func TestHandler_BodyTooLarge(t *testing.T) {
	h := NewHandler(WithDocument(orderDocument()), WithMaxBodyBytes(16))

	rec := postForm(t, h, submissionBody(testsupport.CompleteOrder(), nil), "")
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandler_TranslatorLocalisesMessages(t *testing.T) {
	translator := render.TranslatorFunc(func(locale, key string, args ...any) (string, error) {
		if locale != "es" || key != render.MessageRequiredField {
			return "", errors.New("missing")
		}
		return "Complete el campo " + args[0].(string) + ".", nil
	})
	h := NewHandler(WithDocument(orderDocument()), WithTranslator(translator, "es"))

	sub := testsupport.CompleteOrder()
	sub["full_name"] = ""
	rec := postForm(t, h, submissionBody(sub, nil), "application/json")

	var result validation.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, []string{"Complete el campo Full Name."}, result.Messages())
}

func TestHandler_LogsRejectedRequests(t *testing.T) {
	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := NewHandler(WithDocument(orderDocument()), WithLogger(logger))

	rec := postForm(t, h, strings.NewReader(""), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, logs.String(), "form submission rejected")
	require.Contains(t, logs.String(), "issues=3")
}
