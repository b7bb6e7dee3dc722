package httpform

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/form" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/form" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/admin/", WithRoutePath("order")); got != "/admin/order" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath(""); got != "/form" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersBothHandlers(t *testing.T) {
	mux := http.NewServeMux()
	doc := document.FromStructure(testsupport.OrderForm())
	formPattern, authoringPattern, err := RegisterRoutes(mux, "/app", WithDocument(doc))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if formPattern != "/app/form" || authoringPattern != "/app/form/container" {
		t.Fatalf("unexpected patterns: %q %q", formPattern, authoringPattern)
	}

	req := httptest.NewRequest(http.MethodGet, formPattern, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, authoringPattern, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestRegisterRoutes_Errors(t *testing.T) {
	if _, _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	_, _, err := RegisterRoutes(http.NewServeMux(), "/", WithRoutePath("/x"), WithAuthoringPath("x"))
	if err == nil {
		t.Fatalf("expected error for colliding routes")
	}
}

func TestComponent_NilSafe(t *testing.T) {
	var c *Component
	if got := c.Options().RoutePath; got != "/form" {
		t.Fatalf("unexpected default route: %q", got)
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a document, got %d", rec.Code)
	}
}
