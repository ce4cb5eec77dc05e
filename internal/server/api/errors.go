package api

import (
	"errors"

	"github.com/Alia5/keyswap/apitypes"
	"github.com/Alia5/keyswap/inspector"
)

// Factory helpers returning *apitypes.ApiError (single canonical error type).
func ErrBadRequest(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: detail}
}
func ErrUnauthorized(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 401, Title: "Unauthorized", Detail: detail}
}
func ErrNotFound(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 404, Title: "Not Found", Detail: detail}
}
func ErrPayloadTooLarge(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 413, Title: "Payload Too Large", Detail: detail}
}
func ErrInternal(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 500, Title: "Internal Server Error", Detail: detail}
}

// WrapError normalizes any error into *apitypes.ApiError. Unknown layouts map
// to 404 so clients can tell them apart from server faults.
func WrapError(err error) *apitypes.ApiError {
	if err == nil {
		return nil
	}
	var ae *apitypes.ApiError
	if errors.As(err, &ae) {
		return ae
	}
	var av apitypes.ApiError
	if errors.As(err, &av) {
		return &av
	}
	if errors.Is(err, inspector.ErrUnknownLayout) {
		return ErrNotFound(err.Error())
	}
	return ErrInternal(err.Error())
}
