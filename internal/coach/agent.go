package coach

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
)

// DefaultMaxRounds bounds the completion requests of one reply.
const DefaultMaxRounds = 5

var ErrTooManyRounds = errors.NewSentinel("too many tool rounds")

const systemPrompt = `You are a personal fitness coach. Help the user build a periodized training plan.

When the user has agreed on a plan, call create_fitness_plan with the complete plan. Use start_date and
target_date in YYYY-MM-DD format. Every training split needs at least one training day. Mark rest days with
intensity "rest" and no exercises.

Use get_schedule_summary to answer questions about upcoming training and clear_fitness_plan only when the user
asks to start over. Keep answers short and encouraging.`

// Role of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation kept by the caller.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Agent answers user messages with a chat model that may call the toolbox.
type Agent struct {
	client    openai.Client
	model     openai.ChatModel
	tools     *Toolbox
	logger    *slog.Logger
	maxRounds int
}

func NewAgent(client openai.Client, model string, tools *Toolbox, logger *slog.Logger) *Agent {
	return &Agent{
		client:    client,
		model:     openai.ChatModel(model),
		tools:     tools,
		logger:    logger,
		maxRounds: DefaultMaxRounds,
	}
}

// Reply sends the conversation and userMessage to the model and returns its answer.
//
// Tool calls are executed against sessionID and their results fed back until the model answers with text or
// the round limit is reached. Tool failures are reported to the model rather than aborting the reply.
func (a *Agent) Reply(ctx context.Context, sessionID string, history []Message, userMessage string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2) //nolint:mnd // system and user
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, m := range history {
		switch m.Role {
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		case RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userMessage))

	tools := a.tools.Definitions()
	for round := range a.maxRounds {
		completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    a.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", errors.New("chat completion without choices")
		}
		a.logger.LogAttrs(ctx, slog.LevelDebug, "received chat completion",
			slog.Int("round", round),
			slog.Int64("prompt_tokens", completion.Usage.PromptTokens),
			slog.Int64("completion_tokens", completion.Usage.CompletionTokens))

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			result, err := a.tools.Execute(ctx, sessionID, call.Function.Name, call.Function.Arguments)
			if err != nil {
				a.logger.LogAttrs(ctx, slog.LevelWarn, "tool call failed",
					slog.String("tool", call.Function.Name), errors.SlogError(err))
				result = "error: " + err.Error()
			}
			messages = append(messages, openai.ToolMessage(result, call.ID))
		}
	}
	return "", fmt.Errorf("%w: %d", ErrTooManyRounds, a.maxRounds)
}
