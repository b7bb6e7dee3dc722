package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/httpform"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second

	flagAddr = "addr"
	flagBase = "base-path"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [container-or-structure-file]",
		Short: "Serve a form over HTTP",
		Long: `Serves the form at <base-path>/form (GET renders, POST validates) and the
authoring endpoint at <base-path>/form/container. The form file defaults to
$` + envContainer + ` and the listen address to $` + envAddr + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.env(envContainer)
			if len(args) == 1 {
				path = args[0]
			}
			addr, _ := cmd.Flags().GetString(flagAddr)
			if addr == "" {
				addr = a.env(envAddr)
			}
			if addr == "" {
				addr = defaultAddr
			}
			base, _ := cmd.Flags().GetString(flagBase)

			handler, err := a.serveMux(cmd, path, base)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			return a.serve(ctx, listener, handler)
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().String(flagAddr, "", "listen address (defaults to $"+envAddr+" or "+defaultAddr+")")
	cmd.Flags().String(flagBase, "/", "path prefix for the form routes")
	return cmd
}

// serveMux builds the HTTP routes. An empty path serves only the authoring
// endpoint; the form route answers 404 until a form is configured.
func (a *app) serveMux(cmd *cobra.Command, path, base string) (http.Handler, error) {
	fns := []httpform.OptionFn{
		httpform.WithLogger(a.logger),
		httpform.WithDocumentOptions(document.WithLogger(a.logger)),
	}
	if path != "" {
		data, err := readInput(cmd, path)
		if err != nil {
			return nil, err
		}
		gen, err := a.orchestrator(cmd)
		if err != nil {
			return nil, err
		}
		doc, err := gen.Load(cmd.Context(), formRequest(data))
		if err != nil {
			return nil, err
		}
		fns = append(fns, httpform.WithDocument(doc))
	}

	mux := http.NewServeMux()
	formPattern, authoringPattern, err := httpform.New(fns...).RegisterRoutes(mux, base)
	if err != nil {
		return nil, err
	}
	a.logger.Info("routes registered", "form", formPattern, "authoring", authoringPattern)
	return mux, nil
}

func (a *app) serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}
