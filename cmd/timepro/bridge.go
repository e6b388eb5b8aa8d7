package main

import (
	"context"
	"errors"
	"os"

	"github.com/kulesy/TimePro-MCP/internal/bridge"
	"github.com/spf13/cobra"
)

func newBridgeCmd(opts *rootOptions) *cobra.Command {
	var apiBase string
	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Relay stdio JSON-RPC tool calls to the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if apiBase != "" {
				cfg.Bridge.APIBase = apiBase
			}
			// stdout carries protocol frames only.
			logger, closeLog, err := newLogger(cfg.Log.Level, cfg.Log.Path, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info("starting stdio bridge", "api_base", cfg.Bridge.APIBase, "timeout", cfg.Bridge.Timeout)
			client := bridge.NewClient(cfg.Bridge.APIBase, cfg.Bridge.Timeout)
			err = bridge.New(os.Stdin, os.Stdout, client, logger).Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				logger.Info("shutting down")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&apiBase, "api-base", "", "Base URL of the HTTP API (overrides bridge.api_base)")
	return cmd
}
