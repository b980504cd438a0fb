/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labextract/routes"
)

const shutdownTimeout = 5 * time.Second

var CmdServe = &cli.Command{
	Name:  "serve",
	Usage: "Serve a read-only view of an extracted report",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "report file (PDF or plain text)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "addr",
			Sources: cli.EnvVars("LABEXTRACT_ADDR"),
			Value:   "127.0.0.1:8080",
			Usage:   "listen address",
		},
	},
	Action: serve,
}

func serve(ctx context.Context, cmd *cli.Command) error {
	input := cmd.String("input")

	records, err := extractFile(input)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		return errNoRecords
	}

	srv := &http.Server{
		Addr:         cmd.String("addr"),
		Handler:      routes.NewRouter(routes.NewReport(input, records)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     requestStdLogger,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		appLogger.Info("Starting web server", "addr", srv.Addr, "records", len(records))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
