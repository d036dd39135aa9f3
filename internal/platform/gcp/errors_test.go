package gcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(status.Error(codes.NotFound, "instance not found")))
	assert.True(t, IsNotFound(fmt.Errorf("getting instance: %w", status.Error(codes.NotFound, "nope"))))
	assert.False(t, IsNotFound(status.Error(codes.PermissionDenied, "denied")))
	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}

func TestIsAlreadyExists(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAlreadyExists(status.Error(codes.AlreadyExists, "duplicate")))
	assert.False(t, IsAlreadyExists(status.Error(codes.NotFound, "nope")))
}

func TestIsPermissionDenied(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPermissionDenied(status.Error(codes.PermissionDenied, "denied")))
	assert.False(t, IsPermissionDenied(errors.New("plain error")))
}
