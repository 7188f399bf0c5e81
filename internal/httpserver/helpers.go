package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jortega/store-api/internal/logging"
	"github.com/jortega/store-api/internal/mykafka"
	"github.com/jortega/store-api/internal/service"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// respondError maps the service error taxonomy onto HTTP statuses. Expected
// outcomes keep their message; anything else is a 500 with the detail logged,
// not leaked.
func respondError(c echo.Context, handler string, err error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", handler)

	status := http.StatusInternalServerError
	msg := "internal error"
	var stockErr *service.StockError
	switch {
	case errors.As(err, &stockErr):
		status = http.StatusConflict
		msg = stockErr.Error()
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.Error("request failed", "status", status, "error", err)
	} else {
		l.Warn("request rejected", "status", status, "error", err)
	}
	return c.JSON(status, statusResponse{Status: "error", Message: msg})
}

// publish sends an event to Kafka, best-effort. A nil producer (tests, local
// runs without a broker) is a no-op.
func publish(c echo.Context, producer *mykafka.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
