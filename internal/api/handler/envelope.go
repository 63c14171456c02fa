package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deviolabs/accounts-api/internal/core/notification"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureEnvelope struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// responder owns the request-scoped notifier and renders the uniform
// success/failure envelope every action returns. Create one per request;
// never reuse across requests.
type responder struct {
	notifier *notification.Notifier
}

func newResponder() *responder {
	return &responder{notifier: notification.NewNotifier()}
}

// fail records a business-rule violation for this request.
func (r *responder) fail(message string) {
	r.notifier.Handle(notification.New(message))
}

// failValidation translates a bind or validation failure into notifications,
// one per field error. For wrapped errors the underlying cause's message is
// preferred over the outer one.
func (r *responder) failValidation(err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			r.fail(fieldError(fe))
		}
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			r.fail(he.Internal.Error())
			return
		}
		r.fail(fmt.Sprintf("%v", he.Message))
		return
	}

	r.fail(err.Error())
}

// respond renders the envelope. With a clean notifier it returns
// 200 {success:true, data:<result>}; otherwise 400 {success:false,
// errors:[...]} in insertion order, ignoring result. It only reports prior
// failures and cannot itself fail.
func (r *responder) respond(c echo.Context, result any) error {
	if !r.notifier.HasNotification() {
		return c.JSON(http.StatusOK, successEnvelope{Success: true, Data: result})
	}

	recorded := r.notifier.GetNotifications()
	messages := make([]string, 0, len(recorded))
	for _, n := range recorded {
		messages = append(messages, n.Message)
	}
	return c.JSON(http.StatusBadRequest, failureEnvelope{Success: false, Errors: messages})
}
