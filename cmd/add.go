package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/dictation"
	"github.com/boolean-maybe/tock/internal/bootstrap"
)

// errNothingHeard is returned when dictation ends without a transcript.
var errNothingHeard = errors.New("no speech was recognized")

// stdinIsTerminal reports whether input comes from a terminal. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a task",
	Long: `Add a task to the end of the list. The category is detected from the text.

With --dictate the text comes from speech: the configured dictation command
when run in a terminal, otherwise the first line read from standard input.`,
	Example: `  tock add Prepare client presentation
  echo "call the dentist" | tock add --dictate`,
	RunE: withServices(runAdd),
}

func init() {
	addCmd.Flags().Bool("dictate", false, "take the task text from speech input")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	text := strings.Join(args, " ")

	if useDictation, _ := cmd.Flags().GetBool("dictate"); useDictation {
		heard, err := dictate(cmd.Context(), cmd.InOrStdin())
		if err != nil {
			return err
		}
		text = heard
	}

	added, err := svc.Tasks.AddTask(text)
	if err != nil {
		return err
	}

	if isJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), added)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
		successStyle.Render("✓ Added"),
		added.Text,
		subtleStyle.Render(fmt.Sprintf("[%s] %s", added.CategoryOrDefault(), added.ID)))
	return nil
}

// dictate listens for one utterance and returns its transcript.
func dictate(ctx context.Context, in io.Reader) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var rec dictation.Recognizer
	if stdinIsTerminal() {
		rec = dictation.NewRecognizer(config.GetDictationCommand(), false)
	} else {
		rec = &dictation.LineRecognizer{R: in}
	}

	session := dictation.NewSession(rec)
	if err := session.Start(ctx); err != nil {
		return "", fmt.Errorf("start dictation: %s", session.Error())
	}
	session.Wait(ctx)

	if msg := session.Error(); msg != "" {
		return "", errors.New(msg)
	}
	text := strings.TrimSpace(session.Transcript())
	if text == "" {
		return "", errNothingHeard
	}
	return text, nil
}
