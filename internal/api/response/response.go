package response

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/logging"
)

// Envelope is the body of every API response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func JSON(ctx context.Context, w http.ResponseWriter, status int, data any, message string) {
	write(ctx, w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

// Error writes err as an error envelope. Anything that is not a client error
// is reported with a generic message and logged with its cause.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logging.FromContext(ctx).Error("request failed", slog.Any("error", err))
		message = "internal server error"
	} else {
		var de *domain.Error
		if errors.As(err, &de) {
			message = de.Message
		}
	}
	write(ctx, w, status, Envelope{StatusCode: status, Message: message})
}

func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func write(ctx context.Context, w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	logger := logging.FromContext(ctx)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("encode response body", slog.Int("status", status), slog.Any("error", err))
		return
	}

	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		logger.Warn("request returned client error", slog.Int("status", status), slog.String("message", body.Message))
	}
}
