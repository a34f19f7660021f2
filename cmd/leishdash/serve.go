package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/server"
	"github.com/tidinho/dash-leishmaniose/internal/util"
)

var (
	servePort int
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE:  runServe,
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "Server port, overrides server.port")
	cmd.Flags().BoolVar(&serveDev, "dev", false, "Development mode (redirects the page to the frontend dev server)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveDev {
		cfg.Server.DevMode = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "==========================================")
	fmt.Fprintln(out, "  leishdash - painel de leishmaniose")
	fmt.Fprintln(out, "==========================================")
	fmt.Fprintf(out, "Snapshot: %s\n", cfg.Data.SnapshotPath)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		_ = srv.Shutdown(context.Background())
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.Run(addr)
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Fprintf(out, "Abrindo navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Fprintf(out, "Não foi possível abrir o navegador, acesse: %s\n", url)
		}
	} else {
		fmt.Fprintf(out, "Acesse: %s\n", url)
	}
	fmt.Fprintln(out, "\nCtrl+C para encerrar...")

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	fmt.Fprintln(out, "\nEncerrando...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	return runErr
}
