package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vangoframework/vpmshell/internal/app"
	"github.com/vangoframework/vpmshell/internal/config"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <path>",
		Short: "Print the HTML of a page",
		Long:  `Renders a page through the full router, including the shell layout, and writes the HTML to stdout.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			return renderPage(cmd.Context(), a.Router, args[0], cmd.OutOrStdout())
		},
	}
}

// pageWriter collects a response in memory.
type pageWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (pw *pageWriter) Header() http.Header { return pw.header }

func (pw *pageWriter) WriteHeader(status int) {
	if pw.status == 0 {
		pw.status = status
	}
}

func (pw *pageWriter) Write(b []byte) (int, error) {
	pw.WriteHeader(http.StatusOK)
	return pw.body.Write(b)
}

func renderPage(ctx context.Context, h http.Handler, path string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	req.RemoteAddr = "127.0.0.1:0"

	pw := &pageWriter{header: make(http.Header)}
	h.ServeHTTP(pw, req)
	if pw.status == 0 {
		pw.status = http.StatusOK
	}

	if _, err := io.Copy(w, &pw.body); err != nil {
		return err
	}
	if pw.status >= http.StatusBadRequest {
		return fmt.Errorf("render %s: status %d", path, pw.status)
	}
	return nil
}
