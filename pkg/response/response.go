// Package response defines the uniform result envelope consumed by the
// HTTP layer. It is the only contract that layer needs from the core.
package response

import (
	"github.com/ammar0144/shopcore/pkg/repository"
)

// Result is the envelope every core operation resolves to: status 200 for
// success, 400 for validation failures and invalid transitions, 404 for
// missing rows, 500 for anything unexpected.
type Result struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK wraps a successful result.
func OK(message string, data any) Result {
	return Result{Status: 200, Message: message, Data: data}
}

// FromError maps a core error onto the envelope. A nil error maps to a
// bare 200.
func FromError(err error) Result {
	switch {
	case err == nil:
		return Result{Status: 200, Message: "success"}
	case repository.IsValidation(err):
		return Result{Status: 400, Message: err.Error()}
	case repository.IsInvalidState(err):
		return Result{Status: 400, Message: err.Error()}
	case repository.IsNotFound(err):
		return Result{Status: 404, Message: err.Error()}
	default:
		return Result{Status: 500, Message: "internal error", Data: err.Error()}
	}
}
