package main

import (
	"fmt"
	"io"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/spf13/cobra"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "List decks with their mastery",
	Args:  cobra.NoArgs,
	RunE:  runDecks,
}

func runDecks(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := app.loadLibrary(ctx); err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	printDecks(cmd.OutOrStdout(), app.library)
	return nil
}

func printDecks(w io.Writer, lib *service.Library) {
	decks := lib.Decks()
	if len(decks) == 0 {
		fmt.Fprintln(w, "You have no decks yet!")
		return
	}

	for i, d := range decks {
		fmt.Fprintf(w, "%d: %s (%d cards)\n", i+1, d.Label, d.NumCards)
	}
	fmt.Fprintf(w, "Overall mastery: %s%%\n", domain.FormatMastery(lib.Mastery()))
}
