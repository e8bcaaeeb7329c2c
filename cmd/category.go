package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/tock/internal/bootstrap"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage the keyword categories",
	Long: `Categories are matched in order against new task text; the first category
with a keyword contained in the text wins, otherwise the task is "Other".`,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their keywords in match order",
	Args:  cobra.NoArgs,
	RunE:  withServices(runCategoryList),
}

var categoryAddCmd = &cobra.Command{
	Use:     "add NAME KEYWORD...",
	Short:   "Add a category, or replace the keywords of an existing one",
	Example: `  tock category add Finance invoice budget tax`,
	Args:    cobra.MinimumNArgs(2),
	RunE:    withServices(runCategoryAdd),
}

var categoryRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a category",
	Args:  cobra.ExactArgs(1),
	RunE:  withServices(runCategoryRemove),
}

func init() {
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRmCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(cmd *cobra.Command, _ []string, svc *bootstrap.Services) error {
	cats := svc.Categorizer.Categories()
	if isJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), cats)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tKEYWORDS")
	for _, c := range cats {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", c.Name, strings.Join(c.Keywords, ", "))
	}
	return w.Flush()
}

func runCategoryAdd(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	keywords := make([]string, 0, len(args)-1)
	for _, kw := range args[1:] {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	svc.Categorizer.Update(name, keywords)
	if err := saveCategories(svc.Categorizer.Categories()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", successStyle.Render("✓ Saved"), name, strings.Join(keywords, ", "))
	return nil
}

func runCategoryRemove(cmd *cobra.Command, args []string, svc *bootstrap.Services) error {
	if !svc.Categorizer.Remove(args[0]) {
		return fmt.Errorf("unknown category %q", args[0])
	}
	if err := saveCategories(svc.Categorizer.Categories()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓ Removed"), args[0])
	return nil
}
