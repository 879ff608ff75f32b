// In file: internal/agent/controller.go
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dileep-u-k/voice-tool-gateway/internal/llm"
	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

// maxToolRounds caps how many times one turn may go back to the model with
// tool results before it must answer in plain text.
const maxToolRounds = 5

// Catalogue is what the controller needs from a tool catalogue.
type Catalogue interface {
	Describe() []tools.Tool
	InvokeJSON(ctx context.Context, name, arguments string) (string, error)
}

// ToolCallRecord describes one tool call made while answering a turn.
type ToolCallRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
	Result    string `json:"result"`
	Error     string `json:"error,omitempty"`
}

// TurnResult is what the assistant says back, plus what it did to get there.
type TurnResult struct {
	Reply     string           `json:"reply"`
	ToolCalls []ToolCallRecord `json:"tool_calls"`
	Usage     llm.Usage        `json:"usage"`
}

// Controller runs conversations for a single variant.
type Controller struct {
	variant   *Variant
	catalogue Catalogue
	client    llm.LLMClient
	config    llm.GenerationConfig
	store     SessionStore
	now       func() time.Time
}

// NewController wires a variant to a model and a session store.
func NewController(variant *Variant, client llm.LLMClient, config llm.GenerationConfig, store SessionStore) *Controller {
	return &Controller{
		variant:   variant,
		catalogue: variant.Catalogue,
		client:    client,
		config:    config,
		store:     store,
		now:       time.Now,
	}
}

// Variant returns the variant this controller speaks for.
func (c *Controller) Variant() *Variant { return c.variant }

// Start opens a session. The system prompt and greeting are stored as the
// first two messages and the greeting is returned for the caller to speak.
func (c *Controller) Start(ctx context.Context) (*Session, error) {
	now := c.now()
	session := &Session{
		ID:      uuid.NewString(),
		Variant: c.variant.Name,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: c.variant.SystemPrompt},
			{Role: llm.RoleAssistant, Content: c.variant.Greeting},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.Save(ctx, session); err != nil {
		return nil, err
	}
	log.Printf("📞 Session %s started (%s)", session.ID, c.variant.Name)
	return session, nil
}

// Turn answers one user utterance. The model may call tools for up to
// maxToolRounds rounds; after that it is asked once more without tools.
func (c *Controller) Turn(ctx context.Context, sessionID, utterance string) (*TurnResult, error) {
	session, err := c.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := append(session.Messages, llm.Message{Role: llm.RoleUser, Content: utterance})
	result := &TurnResult{ToolCalls: []ToolCallRecord{}}
	definitions := c.catalogue.Describe()

	for round := 0; ; round++ {
		available := definitions
		if round == maxToolRounds {
			log.Printf("⚠️ Session %s hit %d tool rounds, asking for a final answer", sessionID, maxToolRounds)
			available = nil
		}

		generation, err := c.client.Generate(ctx, messages, &c.config, available)
		if err != nil {
			return nil, fmt.Errorf("LLM generation failed during turn: %w", err)
		}
		result.Usage.Add(generation.Usage)

		if len(generation.ToolCalls) == 0 || available == nil {
			result.Reply = generation.Content
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: generation.Content})
			break
		}

		messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: generation.Content, ToolCalls: generation.ToolCalls})
		records, err := c.dispatch(ctx, generation.ToolCalls)
		if err != nil {
			return nil, err
		}
		for _, record := range records {
			messages = append(messages, llm.Message{Role: llm.RoleTool, Name: record.Name, ToolCallID: record.ID, Content: record.Result})
		}
		result.ToolCalls = append(result.ToolCalls, records...)
	}

	session.Messages = messages
	session.UpdatedAt = c.now()
	if err := c.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return result, nil
}

// dispatch runs the calls of one round concurrently and returns their records
// in the order the model asked for them. Rejected calls become tool results
// describing the problem so the model can correct itself.
func (c *Controller) dispatch(ctx context.Context, calls []*tools.ToolCall) ([]ToolCallRecord, error) {
	records := make([]ToolCallRecord, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			log.Printf("🛠️ Executing tool: %s (ID: %s) with args: %s", call.Function.Name, call.ID, call.Function.Arguments)
			record := ToolCallRecord{ID: call.ID, Name: call.Function.Name, Arguments: call.Function.Arguments}
			text, err := c.catalogue.InvokeJSON(gctx, call.Function.Name, call.Function.Arguments)
			switch {
			case err == nil:
				record.Result = text
			case isRejection(err):
				record.Error = err.Error()
				record.Result = fmt.Sprintf("Error executing tool %s: %v", call.Function.Name, err)
			default:
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tool dispatch failed: %w", err)
	}
	return records, nil
}

func isRejection(err error) bool {
	var validation *tools.ValidationError
	return errors.Is(err, tools.ErrToolNotFound) || errors.As(err, &validation)
}

// End discards a session.
func (c *Controller) End(ctx context.Context, sessionID string) error {
	if err := c.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("👋 Session %s ended", sessionID)
	return nil
}
