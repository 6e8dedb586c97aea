package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the persisted state with fresh demo data",
	RunE:  reseed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func reseed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.store.Reset(ctx); err != nil {
		return err
	}
	snap := rt.store.Snapshot()
	rt.log.Info("Demo data written",
		zap.Int("sites", len(snap.Sites)),
		zap.Int("bays", len(snap.Bays)),
		zap.Int("users", len(snap.Users)),
		zap.Int("reservations", len(snap.Reservations)),
	)
	return nil
}
