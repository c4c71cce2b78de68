package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	svc, err := NewAuthService("admin", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Login("admin", "secret123"))
	require.ErrorIs(t, svc.Login("admin", "wrong"), ErrWrongCredentials)
	require.ErrorIs(t, svc.Login("root", "secret123"), ErrWrongCredentials)
}
