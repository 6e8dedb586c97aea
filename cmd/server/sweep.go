package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark overdue reservations as no-show or expired, once",
	RunE:  sweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func sweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.store.SweepExpired(ctx)
	if err != nil {
		return err
	}
	rt.log.Info("Sweep finished",
		zap.Int("no_shows", len(res.NoShows)),
		zap.Int("expired", len(res.Expired)),
	)
	return printJSON(cmd, res)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
