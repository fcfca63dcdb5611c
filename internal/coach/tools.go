// Package coach connects a chat model to the planner through function tools.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

// Tool names exposed to the model.
const (
	ToolCreatePlan      = "create_fitness_plan"
	ToolScheduleSummary = "get_schedule_summary"
	ToolClearPlan       = "clear_fitness_plan"
)

var (
	ErrUnknownTool      = errors.NewSentinel("unknown tool")
	ErrInvalidArguments = errors.NewSentinel("invalid tool arguments")
)

// Planner is the part of planner.Service the tools drive.
type Planner interface {
	SetPlan(ctx context.Context, sessionID string, plan fitnessplan.FitnessPlan) (schedule.Result, error)
	ClearPlan(ctx context.Context, sessionID string) error
	Summary(ctx context.Context, sessionID string, days int) planner.SummaryResult
}

// Toolbox executes tool calls against a session's plan.
type Toolbox struct {
	planner Planner
	logger  *slog.Logger
}

func NewToolbox(p Planner, logger *slog.Logger) *Toolbox {
	return &Toolbox{planner: p, logger: logger}
}

// Definitions returns the tool declarations sent with every completion request.
func (t *Toolbox) Definitions() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name: ToolCreatePlan,
			Description: openai.String("Create or replace the user's fitness plan. The arguments are the complete " +
				"plan. Training periods run in list order and each split repeats until the next period starts."),
			Parameters: fitnessPlanSchema(),
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        ToolScheduleSummary,
			Description: openai.String("Summarise the upcoming training days of the current plan."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"days": map[string]any{
						"type":        "integer",
						"description": "Number of upcoming days to include. Defaults to 14.",
						"minimum":     1,
					},
				},
				"additionalProperties": false,
			},
		}),
		openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
			Name:        ToolClearPlan,
			Description: openai.String("Remove the user's current fitness plan."),
			Parameters: openai.FunctionParameters{
				"type":                 "object",
				"properties":           map[string]any{},
				"additionalProperties": false,
			},
		}),
	}
}

// Execute runs the tool name with JSON arguments and returns the result for the model.
//
// Arguments are decoded strictly. Malformed or invalid arguments fail with ErrInvalidArguments.
func (t *Toolbox) Execute(ctx context.Context, sessionID, name, arguments string) (string, error) {
	t.logger.LogAttrs(ctx, slog.LevelDebug, "executing tool",
		slog.String("tool", name), slog.Int("arguments_length", len(arguments)))

	switch name {
	case ToolCreatePlan:
		return t.createPlan(ctx, sessionID, arguments)
	case ToolScheduleSummary:
		return t.scheduleSummary(ctx, sessionID, arguments)
	case ToolClearPlan:
		return t.clearPlan(ctx, sessionID, arguments)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

type createPlanResult struct {
	Status        string             `json:"status"`
	Plan          string             `json:"plan"`
	ScheduledDays int                `json:"scheduled_days"`
	Warnings      []schedule.Warning `json:"warnings,omitempty"`
	Summary       string             `json:"summary"`
}

func (t *Toolbox) createPlan(ctx context.Context, sessionID, arguments string) (string, error) {
	plan, err := fitnessplan.Decode(strings.NewReader(arguments))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	result, err := t.planner.SetPlan(ctx, sessionID, plan)
	if err != nil {
		if errors.Is(err, fitnessplan.ErrInvalidPlanShape) {
			return "", fmt.Errorf("%w: %w", ErrInvalidArguments, err)
		}
		return "", fmt.Errorf("set plan: %w", err)
	}
	summary := t.planner.Summary(ctx, sessionID, 0)
	text := summary.Summary
	if text == "" {
		text = summary.Message
	}
	return marshalResult(createPlanResult{
		Status:        "created",
		Plan:          plan.Name,
		ScheduledDays: len(result.Days),
		Warnings:      result.Warnings,
		Summary:       text,
	})
}

type summaryArguments struct {
	Days int `json:"days"`
}

func (t *Toolbox) scheduleSummary(ctx context.Context, sessionID, arguments string) (string, error) {
	var args summaryArguments
	if err := decodeStrict(arguments, &args); err != nil {
		return "", err
	}
	if args.Days < 0 {
		return "", fmt.Errorf("%w: days must be positive", ErrInvalidArguments)
	}
	return marshalResult(t.planner.Summary(ctx, sessionID, args.Days))
}

func (t *Toolbox) clearPlan(ctx context.Context, sessionID, arguments string) (string, error) {
	var args struct{}
	if err := decodeStrict(arguments, &args); err != nil {
		return "", err
	}
	if err := t.planner.ClearPlan(ctx, sessionID); err != nil {
		return "", fmt.Errorf("clear plan: %w", err)
	}
	return marshalResult(map[string]string{"status": "cleared"})
}

// decodeStrict decodes a JSON object into v. Empty arguments decode as {}.
func decodeStrict(arguments string, v any) error {
	if strings.TrimSpace(arguments) == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(arguments))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidArguments)
	}
	return nil
}

func marshalResult(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal tool result: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
