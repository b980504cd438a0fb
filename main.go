/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/labextract/cmd"
	"github.com/humaidq/labextract/logging"
)

func main() {
	logging.Init()
	logger := logging.Logger(logging.SourceApp)

	app := &cli.Command{
		Name:  "labextract",
		Usage: "Extract, export and import laboratory test results",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Sources: cli.EnvVars("LABEXTRACT_DEBUG"),
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logging.SetDebug(c.Bool("debug"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.CmdExtract,
			cmd.CmdImport,
			cmd.CmdServe,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", "error", err)
	}
}
