package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/aksharmala/internal/cli"
	"codeberg.org/snonux/aksharmala/internal/processor"
)

func main() {
	flags := cli.NewFlags()
	proc := processor.NewProcessor(flags)

	rootCmd := cli.CreateRootCommand(flags, cli.Actions{
		FetchAudio:  proc.FetchAudio,
		FetchImages: proc.FetchImages,
		View:        proc.RunViewer,
		ExportAnki: func() error {
			_, err := proc.ExportAnki()
			return err
		},
		Voices: proc.ListVoices,
	})

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Ctrl-C stops a running fetch between two files
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
