package gcp

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func apiCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Unknown
}

// IsNotFound reports whether err is a NotFound API error.
func IsNotFound(err error) bool {
	return apiCode(err) == codes.NotFound
}

// IsAlreadyExists reports whether err is an AlreadyExists API error.
func IsAlreadyExists(err error) bool {
	return apiCode(err) == codes.AlreadyExists
}

// IsPermissionDenied reports whether err is a PermissionDenied API error.
func IsPermissionDenied(err error) bool {
	return apiCode(err) == codes.PermissionDenied
}
