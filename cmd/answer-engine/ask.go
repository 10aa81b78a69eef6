// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/assistant"
	"github.com/pdiddy/answer-engine/internal/generate"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [query...]",
	Short: "Answer a single query and exit",
	Long: `Ask runs one full turn: the query is classified, checked against the
built-in GIS knowledge table, searched across the public sources when
warranted, and phrased through the local model. If the model is unreachable
the raw search document is printed instead.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("mode", "", "force handling mode: search, chat, or deep-think")
	askCmd.Flags().String("persona", "", "override the system-prompt persona")
	askCmd.Flags().Bool("no-generate", false, "skip the local model and print search output directly")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a query")
	}

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

	var gen assistant.Generator
	if noGen, _ := cmd.Flags().GetBool("no-generate"); !noGen {
		gen = generate.NewClient(cfg.Generation, nil)
	}

	client := &http.Client{Timeout: cfg.Sources.Timeout}
	a, err := assistant.New(cfg, client, gen, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	reply, err := a.Turn(cmd.Context(), query)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	return nil
}
