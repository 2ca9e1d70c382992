package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/domain/review"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/spf13/cobra"
)

const (
	frontInstructions = "Press Enter when you are ready to see the back of the card!"
	backInstructions  = "Did you get it right? (y/n)"
)

var reviewCmd = &cobra.Command{
	Use:   "review <deck>",
	Short: "Review a deck on the console",
	Long: `Walk through every card in a deck: the front is shown first, Enter reveals
the back, then answer y or n. Scores are saved when the session ends, including
when input ends early.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	if err := app.loadLibrary(ctx); err != nil {
		return fmt.Errorf("failed to load library: %w", err)
	}

	answered, err := reviewDeck(ctx, app.library, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if answered == 0 {
		return nil
	}

	if err := app.library.Save(ctx); err != nil {
		return fmt.Errorf("failed to save library: %w", err)
	}
	return nil
}

// reviewDeck runs one review session over the named deck, reading answers
// from in. It returns how many cards were answered. An empty deck is
// reported on out and is not an error.
func reviewDeck(ctx context.Context, lib *service.Library, name string, in io.Reader, out io.Writer) (int, error) {
	sess, err := lib.StartReview(name)
	if errors.Is(err, review.ErrEmptyDeck) {
		fmt.Fprintln(out, domain.EmptyDeckMessage)
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	fmt.Fprintf(out, "Reviewing Deck: %s\n", name)

	scanner := bufio.NewScanner(in)
	for {
		card, ok := sess.Current()
		if !ok {
			break
		}
		answered, total := sess.Progress()

		fmt.Fprintf(out, "\nCard %d of %d\n%s\n%s\n", answered+1, total, card.Front, frontInstructions)
		if !scanner.Scan() {
			break
		}
		fmt.Fprintln(out, card.Back)

		outcome, ok := promptOutcome(scanner, out)
		if !ok {
			break
		}

		res, err := sess.Answer(ctx, outcome)
		if err != nil {
			return 0, err
		}
		if res.Notice != "" {
			fmt.Fprintln(out, res.Notice)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read answer: %w", err)
	}

	summary := sess.Summary()
	printSummary(out, summary)
	return summary.Answered, nil
}

// promptOutcome asks until it reads a valid answer. ok is false when input
// ends first.
func promptOutcome(scanner *bufio.Scanner, out io.Writer) (outcome review.Outcome, ok bool) {
	for {
		fmt.Fprintln(out, backInstructions)
		if !scanner.Scan() {
			return "", false
		}

		outcome, err := review.ParseOutcome(scanner.Text())
		if err == nil {
			return outcome, true
		}
		fmt.Fprintln(out, "Please answer y or n.")
	}
}

func printSummary(out io.Writer, s review.Summary) {
	fmt.Fprintf(out, "\nReviewed %d cards in %s: %d correct.\n", s.Answered, s.Deck, s.Correct)
	if s.Mastered > 0 {
		fmt.Fprintf(out, "Mastered: %d\n", s.Mastered)
	}
	if s.Struggling > 0 {
		fmt.Fprintf(out, "Needs attention: %d\n", s.Struggling)
	}
	fmt.Fprintf(out, "Mastery: %s%% -> %s%%\n",
		domain.FormatMastery(s.MasteryBefore),
		domain.FormatMastery(s.MasteryAfter))
}
