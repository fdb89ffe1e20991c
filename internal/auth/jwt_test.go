package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, err := issuer.IssueToken("tenant-a", time.Hour)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-a", claims.TenantID)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a")
	token, err := issuer.IssueToken("tenant-a", time.Hour)
	require.NoError(t, err)

	other := NewTokenIssuer("secret-b")
	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	token, err := issuer.IssueToken("tenant-a", -time.Minute)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}
