// Package cli implements the fitfizz CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rcliao/fitfizz/internal/config"
	"github.com/rcliao/fitfizz/internal/format"
	"github.com/rcliao/fitfizz/internal/observability"
	"github.com/rcliao/fitfizz/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	formatFlag  string
	sessionFlag string

	cfg = &config.Config{Session: "default", Format: "json", Lang: "en", Addr: ":8080"}
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "fitfizz",
	Short: "BMI advisor with meal plans and a keyword chat",
	Long:  "Compute your BMI, get a meal plan for your category, then ask the assistant about snacks, water or rice. SQLite-backed, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		c, err := config.Load()
		if err != nil {
			exitErr("config", err)
		}
		cfg = c
		observability.Init(os.Stderr, cfg.LogLevel)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $FITFIZZ_DB or ~/.fitfizz/fitfizz.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: json or text (default: $FITFIZZ_FORMAT or json)")
	RootCmd.PersistentFlags().StringVarP(&sessionFlag, "session", "s", "", "Session name (default: $FITFIZZ_SESSION or default)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.ResolveDBPath()
}

func getSession() string {
	if sessionFlag != "" {
		return sessionFlag
	}
	return cfg.Session
}

func textOutput() bool {
	if formatFlag != "" {
		return formatFlag == "text"
	}
	return cfg.Format == "text"
}

func printer() *format.Printer {
	return format.NewPrinter(cfg.Lang)
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
