package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/intania/shop-backend/internal/apperr"
)

type Response struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventPublisher is the slice of the Kafka producer the handlers need;
// tests plug in a recording stub.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAlreadyExists:
		return http.StatusConflict
	case apperr.KindInvalidCredentials, apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorJSON renders a service error. Only the apperr message is exposed; a
// wrapped database cause stays in the logs.
func errorJSON(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	message := "internal server error"
	var ae *apperr.Error
	if errors.As(err, &ae) && kind != apperr.KindDatabase && kind != apperr.KindInternal {
		message = ae.Message
	}
	return c.JSON(statusFor(kind), Response{
		Status:  "error",
		Code:    kind.String(),
		Message: message,
	})
}
