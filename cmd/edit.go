package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/internal/bootstrap"
)

var doneCmd = &cobra.Command{
	Use:     "done ID",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task between active and completed",
	Long:    `Toggle a task. ID may be any unique prefix of the task ID.`,
	Args:    cobra.ExactArgs(1),
	RunE:    withServices(runDone),
}

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    withServices(runRemove),
}

var moveCmd = &cobra.Command{
	Use:   "move FROM TO",
	Short: "Move a task to another position",
	Long:  `Move the task at position FROM to position TO. Positions are the # column of "tock list", starting at 1.`,
	Args:  cobra.ExactArgs(2),
	RunE:  withServices(runMove),
}

func init() {
	rootCmd.AddCommand(doneCmd, rmCmd, moveCmd)
}

func runDone(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	t, err := svc.Tasks.Resolve(args[0])
	if err != nil {
		return err
	}
	updated, err := svc.Tasks.Toggle(t.ID)
	if err != nil {
		return err
	}
	if updated.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Completed"), updated.Text)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", subtleStyle.Render("○ Reopened"), updated.Text)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	t, err := svc.Tasks.Resolve(args[0])
	if err != nil {
		return err
	}
	if err := svc.Tasks.Delete(t.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Deleted"), t.Text)
	return nil
}

func runMove(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("FROM must be a number: %w", err)
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("TO must be a number: %w", err)
	}
	if err := svc.Tasks.Move(from-1, to-1); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d → %d\n", successStyle.Render("✓ Moved"), from, to)
	return nil
}
