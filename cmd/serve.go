package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/courtside/internal/dashboard"
	"github.com/KaramelBytes/courtside/internal/mcptools"
	"github.com/spf13/cobra"
)

var (
	serveAddr        string
	servePreviewRows int
	serveNoMCP       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve the interactive dashboard over HTTP",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(argOrEmpty(args))
		if err != nil {
			return err
		}
		addr := cfg.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		preview := cfg.PreviewRows
		if cmd.Flags().Changed("preview-rows") {
			preview = servePreviewRows
		}

		opt := dashboard.Options{
			PreviewRows:    preview,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         slog.Default(),
		}
		if !serveNoMCP {
			ms, err := mcptools.NewServer(t, Version)
			if err != nil {
				return err
			}
			opt.MCP = mcptools.HTTPHandler(ms)
		}
		dash, err := dashboard.New(t, opt)
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:         addr,
			Handler:      dash.Routes(),
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("✓ Serving %s (%d rows, %d columns) on http://%s\n", t.Name, t.Nrow(), t.Ncol(), addr)
			if !serveNoMCP {
				fmt.Printf("  MCP endpoint: http://%s/mcp\n", addr)
			}
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		fmt.Println("\n✓ Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		fmt.Println("✓ Dashboard stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config addr)")
	serveCmd.Flags().IntVar(&servePreviewRows, "preview-rows", 20, "raw rows shown in the preview table")
	serveCmd.Flags().BoolVar(&serveNoMCP, "no-mcp", false, "do not mount the MCP endpoint at /mcp")
}
