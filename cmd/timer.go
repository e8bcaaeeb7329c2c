package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/config"
	"github.com/boolean-maybe/tock/timer"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run a Pomodoro countdown in the terminal",
	Long: `Count down one work phase and then its break, printing the time left.
Press Ctrl+C to stop early.`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func init() {
	timerCmd.Flags().Int("work", 0, "work minutes (default from config)")
	timerCmd.Flags().Int("break", 0, "break minutes (default from config)")
	timerCmd.Flags().Bool("skip-break", false, "stop after the work phase")
	rootCmd.AddCommand(timerCmd)
}

func runTimer(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	work := config.GetWorkDuration()
	if m, _ := cmd.Flags().GetInt("work"); m > 0 {
		work = time.Duration(m) * time.Minute
	}
	brk := config.GetBreakDuration()
	if m, _ := cmd.Flags().GetInt("break"); m > 0 {
		brk = time.Duration(m) * time.Minute
	}
	skipBreak, _ := cmd.Flags().GetBool("skip-break")

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := timer.NewRunner(work, brk)
	phaseDone := make(chan timer.State, 1)
	runner.OnChange(func(s timer.State) {
		fmt.Fprintf(cmd.OutOrStdout(), "\r%s", timerLine(s))
		if s.Status == timer.StatusIdle {
			select {
			case phaseDone <- s:
			default:
			}
		}
	})

	phases := 2
	if skipBreak {
		phases = 1
	}
	for i := 0; i < phases; i++ {
		runner.Start(ctx)
		select {
		case <-ctx.Done():
			runner.Pause()
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), subtleStyle.Render("stopped"))
			return nil
		case s := <-phaseDone:
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(phaseFinishedMessage(s)))
		}
	}
	return nil
}

// timerLine is the single status line redrawn on every tick.
func timerLine(s timer.State) string {
	return fmt.Sprintf("%s  %s  %-7s", headingStyle.Render(s.Phase()), s.Format(), s.Status)
}

// phaseFinishedMessage announces the phase s has just switched to.
func phaseFinishedMessage(s timer.State) string {
	if s.IsBreak {
		return fmt.Sprintf("Work phase done. Take a %d minute break.", int(s.BreakTime/time.Minute))
	}
	return "Break over. Back to work."
}
