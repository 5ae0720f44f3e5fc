package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Store & Storage Specific Errors
var (
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrStoreQuery       = errors.New("store query failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)

func NewDuplicateKeyError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrDuplicateKey),
		Cause:      cause,
	}
}

// NewStoreError creates a new store error with details about the operation
func NewStoreError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Check for common store errors and provide more specific messages
	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "duplicated key"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s %w", entity, ErrDuplicateKey),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "connection") || strings.Contains(errStr, "timeout"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrStoreUnavailable,
				Details:    "Unable to reach the document store",
				Cause:      cause,
			}
		}
	}

	// Generic store error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreQuery,
		Details:    details,
		Cause:      cause,
	}
}

func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func IsStoreUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
