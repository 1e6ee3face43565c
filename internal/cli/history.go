package cli

import (
	"fmt"

	"github.com/rcliao/fitfizz/internal/format"
	"github.com/rcliao/fitfizz/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List measurements of the session",
		Run:   runHistory,
	}
	historyCmd.Flags().IntP("limit", "l", 20, "Max results")

	transcriptCmd := &cobra.Command{
		Use:   "transcript",
		Short: "List chat turns of the session",
		Run:   runTranscript,
	}
	transcriptCmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(historyCmd, transcriptCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	list, err := s.ListMeasurements(cmd.Context(), store.ListParams{Session: getSession(), Limit: limit})
	if err != nil {
		exitErr("history", err)
	}

	if textOutput() {
		renderMeasurements(cmd.OutOrStdout(), printer(), list)
		return
	}
	printJSON(cmd.OutOrStdout(), list)
}

func runTranscript(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	turns, err := s.ListTurns(cmd.Context(), store.ListParams{Session: getSession(), Limit: limit})
	if err != nil {
		exitErr("transcript", err)
	}

	if textOutput() {
		out := cmd.OutOrStdout()
		// Oldest first reads like a conversation.
		for i := len(turns) - 1; i >= 0; i-- {
			t := turns[i]
			fmt.Fprintf(out, "[%s]\n", format.Ago(t.CreatedAt))
			renderTurn(out, t.Query, t.Reply)
		}
		return
	}
	printJSON(cmd.OutOrStdout(), turns)
}
