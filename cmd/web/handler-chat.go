package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/sdeery14/fitness-app-sub000/internal/coach"
	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
)

const (
	chatHistoryKey = "chat_history"
	// maxChatHistory is the number of messages kept in the session and sent to the model.
	maxChatHistory = 20
)

var errChatDisabled = errors.NewSentinel("coaching chat is not configured")

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// chatHistory returns the conversation stored in the session. A corrupt history is dropped.
func (app *application) chatHistory(ctx context.Context) []coach.Message {
	raw := app.sessionManager.GetString(ctx, chatHistoryKey)
	if raw == "" {
		return nil
	}
	var history []coach.Message
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelWarn, "dropping unreadable chat history", errors.SlogError(err))
		app.sessionManager.Remove(ctx, chatHistoryKey)
		return nil
	}
	return history
}

// chat sends message to the coach and records both sides of the exchange in the session.
func (app *application) chat(ctx context.Context, message string) (string, error) {
	if app.agent == nil {
		return "", errChatDisabled
	}
	history := app.chatHistory(ctx)
	reply, err := app.agent.Reply(ctx, contexthelpers.PlanSessionID(ctx), history, message)
	if err != nil {
		return "", errors.Wrap(err, "coach reply")
	}

	history = append(history,
		coach.Message{Role: coach.RoleUser, Content: message},
		coach.Message{Role: coach.RoleAssistant, Content: reply})
	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "", errors.Wrap(err, "marshal chat history")
	}
	app.sessionManager.Put(ctx, chatHistoryKey, string(b))
	return reply, nil
}

// chatStatus maps chat failures to response codes.
func chatStatus(err error) int {
	var apiErr *openai.Error
	switch {
	case errors.Is(err, errChatDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, coach.ErrTooManyRounds), errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (app *application) chatPOST(w http.ResponseWriter, r *http.Request) {
	if app.agent == nil {
		app.writeJSONError(w, r, http.StatusServiceUnavailable, errChatDisabled.Error())
		return
	}
	var req chatRequest
	if err := readJSON(w, r, &req); err != nil {
		app.writeJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		app.writeJSONError(w, r, http.StatusBadRequest, "message must not be empty")
		return
	}

	reply, err := app.chat(r.Context(), message)
	if err != nil {
		status := chatStatus(err)
		if status == http.StatusInternalServerError {
			app.serverError(w, r, err)
			return
		}
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "chat failed", errors.SlogError(err))
		app.writeJSONError(w, r, status, "The coach is unavailable right now. Please try again.")
		return
	}
	app.writeJSON(w, r, http.StatusOK, chatResponse{Reply: reply})
}

// chatFormPOST handles the chat form of the home page.
func (app *application) chatFormPOST(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		app.renderHome(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	message := strings.TrimSpace(r.PostForm.Get("message"))
	if message == "" {
		redirect(w, r, "/")
		return
	}
	if _, err := app.chat(r.Context(), message); err != nil {
		status := chatStatus(err)
		if status == http.StatusInternalServerError {
			app.serverError(w, r, err)
			return
		}
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "chat failed", errors.SlogError(err))
		app.renderHome(w, r, status, "The coach is unavailable right now. Please try again.")
		return
	}
	redirect(w, r, "/")
}
