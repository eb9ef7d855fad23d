package query

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// ValidationError is returned for query parameters that cannot be served.
func ValidationError(param, reason string) error {
	return &gn.Error{
		Code: errcode.QueryValidationError,
		Msg:  "Invalid query parameter <em>%s</em>: %s",
		Vars: []any{param, reason},
		Err:  fmt.Errorf("%s %s", param, reason),
	}
}

// IsValidationError reports whether err is a rejected query parameter.
func IsValidationError(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == errcode.QueryValidationError
}

// ValidationMessage returns a plain-text description of a validation
// error, or an empty string for other errors.
func ValidationMessage(err error) string {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) || gnErr.Code != errcode.QueryValidationError {
		return ""
	}
	return gnErr.Err.Error()
}
