// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/answer-engine/internal/intent"
	"github.com/pdiddy/answer-engine/internal/knowledge"
	"github.com/pdiddy/answer-engine/pkg/types"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [query...]",
	Short: "Show how a query would be routed",
	Long: `Classify prints the handling mode the classifier picks for a query,
the per-mode keyword scores behind the decision, and the knowledge-table
outcome. Useful for debugging why a query went to search instead of chat.`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a query")
	}

	cls := intent.Classify(query)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "query:      %s\n", query)
	fmt.Fprintf(out, "mode:       %s\n", cls.Intent)
	fmt.Fprintf(out, "confidence: %.2f\n", cls.Confidence)
	for _, mode := range types.Intents {
		fmt.Fprintf(out, "score[%s]: %d\n", mode, cls.Scores[mode])
	}

	kb, err := knowledge.Load()
	if err != nil {
		return err
	}
	match := kb.Lookup(query)
	switch match.Kind {
	case types.MatchExact:
		fmt.Fprintf(out, "knowledge:  exact match %q (%s, confidence %.2f)\n",
			match.Entry.Name, match.Category, match.Confidence)
	case types.MatchPartial:
		fmt.Fprintf(out, "knowledge:  domain match (confidence %.2f)\n", match.Confidence)
	default:
		fmt.Fprintln(out, "knowledge:  no match")
	}
	return nil
}
