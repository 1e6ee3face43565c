package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search chat turns by keyword",
		Long:  "Search chat queries and replies for matching text. Searches every session unless --session is given.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().String("rule", "", "Filter by rule: snack, hydration, rice, fallback")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	rule, _ := cmd.Flags().GetString("rule")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.SearchTurns(cmd.Context(), store.SearchParams{
		Session: sessionFlag,
		Query:   query,
		Rule:    advisor.Rule(rule),
		Limit:   limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	out := cmd.OutOrStdout()
	if textOutput() {
		for _, r := range results {
			fmt.Fprintf(out, "[%s/%s]\n", r.Session, r.Rule)
			renderTurn(out, r.Query, r.Reply)
		}
		return
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "[]")
		return
	}
	printJSON(out, results)
}
