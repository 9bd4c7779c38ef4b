package errors

import (
	"net/http"
)

func BadRequest() ErrorEnricher   { return WithCode(http.StatusBadRequest) }
func Unauthorized() ErrorEnricher { return WithCode(http.StatusUnauthorized) }
func Forbidden() ErrorEnricher    { return WithCode(http.StatusForbidden) }
func NotFound() ErrorEnricher     { return WithCode(http.StatusNotFound) }

// Constraint marks a uniqueness violation. Handlers answer those with
// 400, matching the duplicate-email and duplicate-paper responses.
func Constraint() ErrorEnricher {
	return func(err error) error {
		return WithConstraint()(WithCode(http.StatusBadRequest)(err))
	}
}
