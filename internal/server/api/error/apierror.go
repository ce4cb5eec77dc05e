// Package apierror builds value-typed API errors for packages that must not
// import the api server package (auth, apiclient).
package apierror

import "github.com/Alia5/keyswap/apitypes"

func ErrUnauthorized(detail string) apitypes.ApiError {
	return apitypes.ApiError{Status: 401, Title: "Unauthorized", Detail: detail}
}
