// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/assistant"
	"github.com/pdiddy/answer-engine/internal/generate"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session on stdin",
	Long: `Chat reads queries from stdin, one per line, and answers each in turn.
Conversation history accumulates for the session and is fed to the local
model, so follow-up questions work. The session is held in memory and
discarded on exit. Type "exit" or press Ctrl-D to quit.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("mode", "", "force handling mode for every turn: search, chat, or deep-think")
	chatCmd.Flags().String("persona", "", "override the system-prompt persona")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		if !types.ValidIntent(mode) {
			return fmt.Errorf("unknown mode %q (expected search, chat, or deep-think)", mode)
		}
		cfg.ModeOverride = mode
	}
	if persona, _ := cmd.Flags().GetString("persona"); persona != "" {
		cfg.Generation.Persona = persona
	}

	client := &http.Client{Timeout: cfg.Sources.Timeout}
	gen := generate.NewClient(cfg.Generation, nil)
	a, err := assistant.New(cfg, client, gen, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "answer-engine %s (session %s)\n", version, a.SessionID())
	fmt.Fprintln(out, `Ask anything; type "exit" to quit.`)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			break
		}

		reply, err := a.Turn(cmd.Context(), query)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n[%s] %s\n\n", reply.Classification.Intent, reply.Text)
	}

	fmt.Fprintln(out, "\nbye")
	return scanner.Err()
}
