package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/sdeery14/fitness-app-sub000/internal/coach"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

// fakeOpenAI replays chat completions and records the request bodies.
type fakeOpenAI struct {
	mu        sync.Mutex
	responses []string
	requests  []string
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.URL.Path != "/v1/chat/completions" {
		http.NotFound(w, r)
		return
	}
	f.requests = append(f.requests, string(body))
	i := min(len(f.requests), len(f.responses)) - 1
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, f.responses[i])
}

func (f *fakeOpenAI) request(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.requests) {
		return ""
	}
	return f.requests[i]
}

func completion(t *testing.T, message map[string]any, finishReason string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1704067200,
		"model":   "gpt-4o",
		"choices": []map[string]any{{"index": 0, "finish_reason": finishReason, "message": message, "logprobs": nil}},
		"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
	if err != nil {
		t.Fatalf("Failed to marshal completion: %v", err)
	}
	return string(b)
}

func textCompletion(t *testing.T, content string) string {
	t.Helper()
	return completion(t, map[string]any{"role": "assistant", "content": content}, "stop")
}

func toolCompletion(t *testing.T, name, arguments string) string {
	t.Helper()
	return completion(t, map[string]any{
		"role":    "assistant",
		"content": "",
		"tool_calls": []map[string]any{{
			"id":       "call_1",
			"type":     "function",
			"function": map[string]any{"name": name, "arguments": arguments},
		}},
	}, "tool_calls")
}

func startChatServer(t *testing.T, model *fakeOpenAI) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(model)
	t.Cleanup(srv.Close)
	return srv
}

func Test_application_chat(t *testing.T) {
	ctx := t.Context()
	model := &fakeOpenAI{
		mu: sync.Mutex{},
		responses: []string{
			toolCompletion(t, coach.ToolCreatePlan, planJSON(t, fourWeekPlan())),
			textCompletion(t, "Your plan is ready."),
		},
		requests: nil,
	}
	llm := startChatServer(t, model)
	server := startServer(t, lookupEnvWith(map[string]string{
		"OPENAI_API_KEY":          "test-key",
		"FITNESS_OPENAI_BASE_URL": llm.URL + "/v1/",
	}))
	client := server.Client()

	t.Run("Reply creates the plan", func(t *testing.T) {
		var body struct {
			Reply string `json:"reply"`
		}
		status, err := client.JSON(ctx, http.MethodPost, "/api/chat", map[string]string{"message": "Build me a plan"},
			&body)
		if err != nil {
			t.Fatalf("Failed to chat: %v", err)
		}
		if status != http.StatusOK || body.Reply != "Your plan is ready." {
			t.Fatalf("Unexpected reply %d %q", status, body.Reply)
		}

		var plan fitnessplan.FitnessPlan
		if status, err = client.JSON(ctx, http.MethodGet, "/api/plan", nil, &plan); err != nil {
			t.Fatalf("Failed to get plan: %v", err)
		}
		if status != http.StatusOK || plan.Name != "Strength Block" {
			t.Errorf("Expected the coach to store the plan, got %d %q", status, plan.Name)
		}
	})

	t.Run("Conversation is shown and sent as history", func(t *testing.T) {
		doc, err := client.GetDoc(ctx, "/")
		if err != nil {
			t.Fatalf("Failed to get document: %v", err)
		}
		if got := doc.Find(".message.user").Text(); got != "Build me a plan" {
			t.Errorf("Expected user message, got %q", got)
		}
		if got := doc.Find(".message.assistant").Text(); got != "Your plan is ready." {
			t.Errorf("Expected assistant message, got %q", got)
		}

		if doc, err = client.SubmitForm(ctx, doc, "/chat", map[string]string{"Message": "What is next?"}); err != nil {
			t.Fatalf("Failed to submit chat form: %v", err)
		}
		if n := doc.Find(".message").Length(); n != 4 {
			t.Errorf("Expected four messages, got %d", n)
		}
		third := model.request(2)
		if !strings.Contains(third, "Build me a plan") || !strings.Contains(third, "What is next?") {
			t.Errorf("Expected history in the request, got %s", third)
		}
	})

	t.Run("Empty message", func(t *testing.T) {
		status, err := client.JSON(ctx, http.MethodPost, "/api/chat", map[string]string{"message": "  "}, nil)
		if err != nil {
			t.Fatalf("Failed to chat: %v", err)
		}
		if status != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", status)
		}
	})
}

func Test_application_chatDisabled(t *testing.T) {
	server := startServer(t, testLookupEnv)

	var body struct {
		Error string `json:"error"`
	}
	status, err := server.Client().JSON(t.Context(), http.MethodPost, "/api/chat", map[string]string{"message": "hi"},
		&body)
	if err != nil {
		t.Fatalf("Failed to chat: %v", err)
	}
	if status != http.StatusServiceUnavailable || body.Error != errChatDisabled.Error() {
		t.Errorf("Expected 503 %q, got %d %q", errChatDisabled, status, body.Error)
	}
}

func Test_chatStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "disabled", err: errChatDisabled, want: http.StatusServiceUnavailable},
		{name: "too many rounds", err: fmt.Errorf("reply: %w", coach.ErrTooManyRounds), want: http.StatusBadGateway},
		{name: "api error", err: errors.Wrap(&openai.Error{StatusCode: http.StatusTooManyRequests}, "coach reply"),
			want: http.StatusBadGateway},
		{name: "other", err: errors.New("disk full"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chatStatus(tt.err); got != tt.want {
				t.Errorf("chatStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
