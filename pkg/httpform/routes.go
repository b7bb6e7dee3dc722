package httpform

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Mux is anything the handlers can be mounted on; *http.ServeMux and most
// routers satisfy it.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the form and authoring handlers under basePath on
// mux and returns both patterns.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (formPattern, authoringPattern string, err error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value. Callers are expected to pass an Options value
// produced by NewOptions (or equivalent) so defaults apply.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, string, error) {
	if mux == nil {
		return "", "", fmt.Errorf("httpform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	formPattern := mountPath(basePath, opts.RoutePath)
	authoringPattern := mountPath(basePath, opts.AuthoringPath)
	if formPattern == authoringPattern {
		return "", "", fmt.Errorf("httpform: form and authoring routes both resolve to %q", formPattern)
	}

	mux.Handle(formPattern, HandlerWithOptions(opts))
	mux.Handle(authoringPattern, AuthoringHandlerWithOptions(opts))
	return formPattern, authoringPattern, nil
}

func mountPath(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
