package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as JSON",
		Long:  "Export every active session with its measurements and chat turns. Limit to one session with --session.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exports, err := s.ExportAll(cmd.Context(), sessionFlag)
	if err != nil {
		exitErr("export", err)
	}

	printJSON(cmd.OutOrStdout(), exports)
}
