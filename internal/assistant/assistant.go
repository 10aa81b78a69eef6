// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assistant orchestrates a conversation turn: classify the
// query, consult the built-in knowledge table, fan out to the search
// sources when warranted, and phrase the answer through the local
// model. Every stage may fail; the turn still produces a reply.
package assistant

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/answer-engine/internal/aggregate"
	"github.com/pdiddy/answer-engine/internal/format"
	"github.com/pdiddy/answer-engine/internal/generate"
	"github.com/pdiddy/answer-engine/internal/intent"
	"github.com/pdiddy/answer-engine/internal/knowledge"
	"github.com/pdiddy/answer-engine/internal/session"
	"github.com/pdiddy/answer-engine/internal/sources"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// generatorApology is shown when the language model is unavailable and
// there is no search document to fall back on.
const generatorApology = "I could not reach the local language model. " +
	"Start the Ollama daemon and try again, or use search mode for a direct answer."

// Generator produces an answer from a prompt request. Satisfied by
// generate.Client; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req generate.Request) (string, error)
}

// Assistant holds the wired pipeline for one conversation session.
type Assistant struct {
	cfg       types.AssistantConfig
	kb        *knowledge.Base
	adapters  []sources.Adapter
	gen       Generator
	store     *session.Store
	sessionID string
	logger    zerolog.Logger
}

// New wires an assistant from configuration. A nil generator disables
// model phrasing; search turns then return the rendered document and
// chat turns return a fixed notice.
func New(cfg types.AssistantConfig, client *http.Client, gen Generator, logger zerolog.Logger) (*Assistant, error) {
	kb, err := knowledge.Load()
	if err != nil {
		return nil, fmt.Errorf("loading knowledge table: %w", err)
	}

	store, err := session.NewStore()
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	sessionID, err := store.New(context.Background())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating session: %w", err)
	}

	if client == nil {
		client = &http.Client{Timeout: cfg.Sources.Timeout}
	}

	return &Assistant{
		cfg:       cfg,
		kb:        kb,
		adapters:  sources.Registry(client),
		gen:       gen,
		store:     store,
		sessionID: sessionID,
		logger:    logger,
	}, nil
}

// Close releases the session store.
func (a *Assistant) Close() error {
	return a.store.Close()
}

// SessionID returns the current session identifier.
func (a *Assistant) SessionID() string {
	return a.sessionID
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	// Text is the answer shown to the user. Never empty.
	Text string

	// Classification records how the query was routed.
	Classification types.Classification

	// Knowledge is the knowledge-table outcome for the query.
	Knowledge types.KnowledgeMatch

	// Rendered is the full formatted search document, set only when the
	// turn ran the source fan-out.
	Rendered string

	// Digest is the compact search summary fed to the generator.
	Digest string

	// Generated reports whether Text came from the language model.
	Generated bool
}

// Turn handles one user query end to end. The user message and the
// reply are appended to the session transcript regardless of which
// path produced the answer.
func (a *Assistant) Turn(ctx context.Context, query string) (Reply, error) {
	cls := a.classify(query)
	km := a.kb.Lookup(query)

	reply := Reply{Classification: cls, Knowledge: km}

	history, err := a.store.History(ctx, a.sessionID, 0)
	if err != nil {
		return Reply{}, fmt.Errorf("loading history: %w", err)
	}
	if err := a.store.Append(ctx, a.sessionID, types.Message{
		Role: types.RoleUser, Content: query,
	}); err != nil {
		return Reply{}, fmt.Errorf("recording query: %w", err)
	}

	switch {
	case km.Kind == types.MatchExact:
		a.answerFromKnowledge(ctx, query, &reply)
	case cls.Intent == types.IntentSearch:
		a.answerFromSearch(ctx, query, history, &reply)
	default:
		a.answerFromModel(ctx, query, history, &reply)
	}

	if reply.Text == "" {
		reply.Text = generatorApology
	}

	if err := a.store.Append(ctx, a.sessionID, types.Message{
		Role: types.RoleAssistant, Content: reply.Text, Mode: cls.Intent,
	}); err != nil {
		return Reply{}, fmt.Errorf("recording reply: %w", err)
	}
	if err := a.store.RecordTurn(ctx, a.sessionID, session.Turn{
		Query: query, Intent: cls.Intent, Digest: reply.Digest,
	}); err != nil {
		return Reply{}, fmt.Errorf("recording turn: %w", err)
	}

	return reply, nil
}

// classify applies the mode override when configured, otherwise runs
// the keyword classifier.
func (a *Assistant) classify(query string) types.Classification {
	if types.ValidIntent(a.cfg.ModeOverride) {
		return types.Classification{Intent: types.Intent(a.cfg.ModeOverride), Confidence: 1}
	}
	return intent.Classify(query)
}

// answerFromKnowledge answers from the curated table. In search mode
// the live sources still run and their document is appended, so an
// exact match never hides fresher context.
func (a *Assistant) answerFromKnowledge(ctx context.Context, query string, reply *Reply) {
	reply.Text = knowledge.FormatMatch(reply.Knowledge)
	a.logger.Debug().
		Str("entry", reply.Knowledge.Entry.Name).
		Str("category", reply.Knowledge.Category).
		Msg("answered from knowledge table")

	if reply.Classification.Intent != types.IntentSearch {
		return
	}
	agg := a.search(ctx, query)
	reply.Rendered = format.Render(query, agg)
	reply.Digest = format.Digest(agg, format.DefaultDigestBudget)
	reply.Text = reply.Text + "\n\n---\n\n" + reply.Rendered
}

// answerFromSearch runs the source fan-out and phrases the result. If
// the generator fails the rendered document is the answer.
func (a *Assistant) answerFromSearch(ctx context.Context, query string, history []types.Message, reply *Reply) {
	agg := a.search(ctx, query)
	reply.Rendered = format.Render(query, agg)
	reply.Digest = format.Digest(agg, format.DefaultDigestBudget)

	if a.gen == nil {
		reply.Text = reply.Rendered
		return
	}

	text, err := a.gen.Generate(ctx, a.request(query, reply.Classification.Intent, history, reply.Digest))
	if err != nil {
		a.logger.Warn().Err(err).Msg("generation failed, returning search document")
		reply.Text = reply.Rendered
		return
	}
	reply.Text = text
	reply.Generated = true

	if reply.Knowledge.Kind == types.MatchPartial {
		reply.Text = knowledge.FormatMatch(reply.Knowledge) + "\n\n" + reply.Text
	}
}

// answerFromModel handles chat and deep-think turns.
func (a *Assistant) answerFromModel(ctx context.Context, query string, history []types.Message, reply *Reply) {
	if a.gen == nil {
		reply.Text = generatorApology
		return
	}
	text, err := a.gen.Generate(ctx, a.request(query, reply.Classification.Intent, history, ""))
	if err != nil {
		a.logger.Warn().Err(err).Msg("generation failed")
		reply.Text = generatorApology
		return
	}
	reply.Text = text
	reply.Generated = true
}

// search runs the fan-out under the configured global deadline.
func (a *Assistant) search(ctx context.Context, query string) types.AggregateResult {
	if a.cfg.Aggregate.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Aggregate.Deadline)
		defer cancel()
	}
	return aggregate.Aggregate(ctx, query, a.adapters, a.cfg.Sources, a.logger)
}

func (a *Assistant) request(query string, mode types.Intent, history []types.Message, digest string) generate.Request {
	gen := a.cfg.Generation
	return generate.Request{
		Query:       strings.TrimSpace(query),
		Persona:     gen.Persona,
		Mode:        mode,
		History:     history,
		Window:      gen.HistoryWindow,
		Digest:      digest,
		Temperature: gen.Temperature,
		MaxTokens:   gen.MaxTokens,
	}
}
