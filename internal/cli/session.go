package cli

import (
	"fmt"

	"github.com/rcliao/fitfizz/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Session management",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List active sessions",
		Run:   runSessionList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionRm,
	}
	rmCmd.Flags().Bool("hard", false, "Permanent delete of the session and its history (irreversible)")

	sessionCmd.AddCommand(listCmd, rmCmd)
	RootCmd.AddCommand(sessionCmd)
}

func runSessionList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sessions, err := s.ListSessions(cmd.Context())
	if err != nil {
		exitErr("list sessions", err)
	}

	if textOutput() {
		renderSessions(cmd.OutOrStdout(), printer(), sessions)
		return
	}
	printJSON(cmd.OutOrStdout(), sessions)
}

func runSessionRm(cmd *cobra.Command, args []string) {
	name := args[0]
	hard, _ := cmd.Flags().GetBool("hard")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.RmSession(cmd.Context(), store.RmParams{Name: name, Hard: hard}); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"session":%q,"hard":%t}`+"\n", name, hard)
}
