package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Engagement errors
var (
	ErrAlreadyLiked    = errors.New("Already liked")
	ErrAlreadyFollowed = errors.New("already following")
	ErrSelfFollow      = errors.New("users cannot follow themselves")
	ErrPartialFailure  = errors.New("partial failure")
	ErrConfigInvalid   = errors.New("configuration invalid")
)

func NewAlreadyLikedError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrAlreadyLiked}
}

func NewAlreadyFollowedError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusConflict, err: ErrAlreadyFollowed}
}

func NewSelfFollowError() *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrSelfFollow, Field: "followingId"}
}

// NewPartialFailureError reports an operation where some steps failed and the rest succeeded
func NewPartialFailureError(operation string, failedSteps []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusMultiStatus,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("%s failed for: %s", operation, strings.Join(failedSteps, ", ")),
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Invalid configuration for %s", configName),
		Cause:      cause,
		Field:      configName,
	}
}
