package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Create, remove or show decks",
}

var deckCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckCreate,
}

var deckRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a deck and its cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckRm,
}

var deckShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a deck's label and numbered cards",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeckShow,
}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add or remove cards in a deck",
}

var cardAddCmd = &cobra.Command{
	Use:   "add <deck> <front> <back>",
	Short: "Append a card to a deck",
	Args:  cobra.ExactArgs(3),
	RunE:  runCardAdd,
}

var cardRmCmd = &cobra.Command{
	Use:   "rm <deck> <n>",
	Short: "Remove the card at position n (starting at 1)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCardRm,
}

func init() {
	deckCmd.AddCommand(deckCreateCmd, deckRmCmd, deckShowCmd)
	cardCmd.AddCommand(cardAddCmd, cardRmCmd)
}

// withLibrary loads the library, runs fn on it and saves the result when
// save is set. A missing library file starts an empty library.
func withLibrary(cmd *cobra.Command, save bool, fn func(context.Context, *service.Library) error) error {
	ctx := commandContext(cmd)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := app.loadLibrary(ctx); err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}
	if err := fn(ctx, app.library); err != nil {
		return err
	}
	if !save {
		return nil
	}

	if err := app.library.Save(ctx); err != nil {
		return fmt.Errorf("failed to save library: %w", err)
	}
	return nil
}

func runDeckCreate(cmd *cobra.Command, args []string) error {
	return withLibrary(cmd, true, func(ctx context.Context, lib *service.Library) error {
		deck, err := lib.CreateDeck(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created deck %s\n", deck.Name)
		return nil
	})
}

func runDeckRm(cmd *cobra.Command, args []string) error {
	return withLibrary(cmd, true, func(ctx context.Context, lib *service.Library) error {
		if err := lib.DeleteDeck(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed deck %s\n", args[0])
		return nil
	})
}

func runDeckShow(cmd *cobra.Command, args []string) error {
	return withLibrary(cmd, false, func(_ context.Context, lib *service.Library) error {
		detail, err := lib.DeckDetail(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, detail.Deck.Label)
		fmt.Fprint(out, detail.Listing)
		return nil
	})
}

func runCardAdd(cmd *cobra.Command, args []string) error {
	return withLibrary(cmd, true, func(ctx context.Context, lib *service.Library) error {
		card, err := lib.AddCard(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added card %d: %s\n", card.Position, card.Front)
		return nil
	})
}

func runCardRm(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid card number %q", args[1])
	}

	return withLibrary(cmd, true, func(ctx context.Context, lib *service.Library) error {
		card, err := lib.RemoveCard(ctx, args[0], n)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed card %d: %s\n", n, card.Front)
		return nil
	})
}
