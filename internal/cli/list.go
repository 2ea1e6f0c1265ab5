package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the procedures in the catalog",
	Long: `List the procedures in the catalog with their urgency.

Use --verbose to include each procedure's trigger keywords.

Examples:
  crisis list
  crisis list -v`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <category>",
	Short: "Show a procedure without classifying a query",
	Long: `Show the full procedure for a category id, as listed by 'crisis list'.

Examples:
  crisis show cpr
  crisis show choking`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords <word>",
	Short: "Find categories whose trigger phrases contain a word",
	Long: `Find the categories that have at least one trigger phrase containing the word.

Examples:
  crisis keywords blood
  crisis keywords breath`,
	Args: cobra.ExactArgs(1),
	RunE: runKeywords,
}

func runList(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	cat := asst.Catalog()

	fmt.Fprint(w, rend.ProcedureList(cat.Procedures()))
	if verbose {
		fmt.Fprintln(w)
		for _, e := range cat.KeywordTable() {
			fmt.Fprintf(w, "%s: %s\n", e.CategoryID, strings.Join(e.Phrases, ", "))
		}
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := asst.Catalog().MustProcedure(strings.ToLower(args[0]))
	if err != nil {
		return fmt.Errorf("%w (see 'crisis list')", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), rend.Procedure(p, "", -1, time.Time{}))
	return nil
}

func runKeywords(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	matches := asst.Catalog().SearchByKeyword(args[0])

	if len(matches) == 0 {
		fmt.Fprintf(w, "No categories have a phrase containing %q.\n", args[0])
		return nil
	}

	fmt.Fprintf(w, "Categories (%d):\n\n", len(matches))
	for _, id := range matches {
		fmt.Fprintf(w, "- %s\n", id)
	}
	return nil
}
