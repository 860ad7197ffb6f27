package errors

import (
	"fmt"

	"github.com/jfcarod/convocations-api/constant"
)

type CustomError struct {
	errType constant.ErrorType
	detail  string
}

func (c CustomError) Error() string {
	if c.detail != "" {
		return c.detail
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorf attaches a formatted detail message, used for not-found
// responses that name the entity and id.
func SetCustomErrorf(errorType constant.ErrorType, format string, args ...any) CustomError {
	return CustomError{
		errType: errorType,
		detail:  fmt.Sprintf(format, args...),
	}
}
