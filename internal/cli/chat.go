package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/fitfizz/internal/advice"
	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [query]",
		Short: "Ask the assistant a question",
		Long:  "Ask about snacks, water or rice. With no arguments, each line of stdin is answered in turn. Requires a prior assess in the session.",
		Run:   runChat,
	}

	RootCmd.AddCommand(cmd)
}

type turnOutput struct {
	ID    string       `json:"id"`
	Query string       `json:"query"`
	Reply string       `json:"reply"`
	Rule  advisor.Rule `json:"rule"`
}

func runChat(cmd *cobra.Command, args []string) {
	name := getSession()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	svc := advice.NewService(s)
	if err := svc.CheckChat(cmd.Context(), name); err != nil {
		exitErr("chat", err)
	}

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		if err := answerOne(cmd.Context(), svc, name, strings.Join(args, " "), out, textOutput()); err != nil {
			exitErr("chat", err)
		}
		return
	}
	if err := chatLoop(cmd.Context(), svc, name, cmd.InOrStdin(), out, textOutput()); err != nil {
		exitErr("chat", err)
	}
}

// chatLoop answers each line of r as soon as it arrives.
func chatLoop(ctx context.Context, svc *advice.Service, name string, r io.Reader, w io.Writer, text bool) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := answerOne(ctx, svc, name, sc.Text(), w, text); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	return nil
}

func answerOne(ctx context.Context, svc *advice.Service, name, query string, w io.Writer, text bool) error {
	turn, err := svc.Ask(ctx, name, query)
	if err != nil {
		return err
	}
	if turn == nil {
		return nil
	}
	if text {
		renderTurn(w, turn.Query, turn.Reply)
		return nil
	}
	line, err := jsonLine(turnOutput{ID: turn.ID, Query: turn.Query, Reply: turn.Reply, Rule: turn.Rule})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, line)
	return err
}
