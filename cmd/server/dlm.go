package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var withKPIs bool

var dlmCmd = &cobra.Command{
	Use:   "dlm <site-id>",
	Short: "Print the current power allocation of a site",
	Args:  cobra.ExactArgs(1),
	RunE:  dlm,
}

func init() {
	dlmCmd.Flags().BoolVar(&withKPIs, "kpis", false, "print the site KPIs as well")
	rootCmd.AddCommand(dlmCmd)
}

func dlm(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	snap, err := rt.store.AllocatePower(ctx, args[0])
	if err != nil {
		return err
	}
	if err := printJSON(cmd, snap); err != nil {
		return err
	}
	if !withKPIs {
		return nil
	}
	kpis, err := rt.store.SiteKPIs(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, kpis)
}
