package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hasanpeal/AlphaSignalAI/internal/domain"
	"github.com/hasanpeal/AlphaSignalAI/internal/prompt"
	"github.com/hasanpeal/AlphaSignalAI/internal/session"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultMaxHistory = 20
	modelTemperature  = 0.7

	// Fixed user-safe replies for LLM failures. Chat keeps flowing; the
	// failure never surfaces as an HTTP error and never touches history.
	analyzeFailureReply  = "I apologize, but I encountered an error while analyzing the stock data. Please try again or check your API configuration."
	continueFailureReply = "I apologize, but I encountered an error while processing your message. Please try again."
)

// ChatCompleter is the single LLM call shape the advisor needs. The openai
// client satisfies it through openAICompleter; tests substitute stubs.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
}

type openAICompleter struct {
	client openai.Client
	model  string
}

func (c *openAICompleter) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(modelTemperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// AdvisorConfig configures the OpenAI-backed advisor.
type AdvisorConfig struct {
	APIKey     string
	Model      string
	MaxHistory int
}

// AdvisorService is the conversation engine: it owns prompt assembly and
// the append-only per-session history, delegating turns to the LLM.
type AdvisorService struct {
	tracer     trace.Tracer
	llm        ChatCompleter
	sessions   *session.Store
	maxHistory int
}

func NewAdvisorService(tracer trace.Tracer, cfg AdvisorConfig, sessions *session.Store) *AdvisorService {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return NewAdvisorServiceWithCompleter(
		tracer,
		&openAICompleter{client: client, model: cfg.Model},
		sessions,
		cfg.MaxHistory,
	)
}

// NewAdvisorServiceWithCompleter wires an explicit completer; primarily a
// test seam.
func NewAdvisorServiceWithCompleter(tracer trace.Tracer, llm ChatCompleter, sessions *session.Store, maxHistory int) *AdvisorService {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	return &AdvisorService{
		tracer:     tracer,
		llm:        llm,
		sessions:   sessions,
		maxHistory: maxHistory,
	}
}

// Analyze runs the first turn of a session: it pins the formatted stock
// context as the session snapshot, asks the LLM, and appends the completed
// round-trip. On LLM failure it returns the fixed apology and leaves the
// session untouched apart from the snapshot.
func (a *AdvisorService) Analyze(ctx context.Context, sessionID, question string, data *domain.StockData) string {
	ctx, span := a.tracer.Start(ctx, "advisor-service.analyze")
	defer span.End()
	span.SetAttributes(
		attribute.String("session_id", sessionID),
		attribute.String("symbol", data.Quote.Symbol),
	)

	conv := a.sessions.GetOrCreate(sessionID)
	conv.Lock()
	defer conv.Unlock()

	conv.SetSnapshot(prompt.FormatStockData(data))
	return a.turn(ctx, conv, question, analyzeFailureReply)
}

// Continue runs a follow-up turn, replaying the snapshot (when one exists)
// and the trailing history ahead of the new question.
func (a *AdvisorService) Continue(ctx context.Context, sessionID, question string) string {
	ctx, span := a.tracer.Start(ctx, "advisor-service.continue")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", sessionID))

	conv := a.sessions.GetOrCreate(sessionID)
	conv.Lock()
	defer conv.Unlock()

	return a.turn(ctx, conv, question, continueFailureReply)
}

// Ask is the front-end entry point used by the Telegram bot and the SSH
// terminal; it behaves like Continue.
func (a *AdvisorService) Ask(ctx context.Context, sessionID, question string) string {
	return a.Continue(ctx, sessionID, question)
}

// Reset drops a session's history and snapshot.
func (a *AdvisorService) Reset(sessionID string) {
	a.sessions.Clear(sessionID)
}

// turn performs one LLM round-trip against a locked conversation. History
// is extended only on success, so a failed call cannot leave a dangling
// user message.
func (a *AdvisorService) turn(ctx context.Context, conv *session.Conversation, question, failureReply string) string {
	messages := a.assemble(conv, question)

	answer, err := a.llm.Complete(ctx, messages)
	if err != nil {
		log.Printf("advisor: completion failed: %v", err)
		return failureReply
	}

	now := time.Now()
	conv.Append(
		domain.ChatMessage{Role: domain.RoleUser, Content: question, Timestamp: now},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: answer, Timestamp: now},
	)
	return answer
}

// assemble builds the deterministic request: system instruction, context
// snapshot when set, trailing history, then the new question.
func (a *AdvisorService) assemble(conv *session.Conversation, question string) []openai.ChatCompletionMessageParamUnion {
	history := conv.History()
	if len(history) > a.maxHistory {
		history = history[len(history)-a.maxHistory:]
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+3)
	messages = append(messages, openai.SystemMessage(prompt.SystemInstruction))
	if snapshot := conv.Snapshot(); snapshot != "" {
		messages = append(messages, openai.SystemMessage(snapshot))
	}
	for _, msg := range history {
		switch msg.Role {
		case domain.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(question))
	return messages
}
