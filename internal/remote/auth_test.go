package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) *Auth {
	t.Helper()
	// The endpoint is never reached by these tests: validation failures return
	// before any request is made
	client, err := NewClient("http://localhost:1/graphql", "")
	require.NoError(t, err)
	return NewAuth(client, nil)
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient("", "key")
	assert.Error(t, err)
}

func TestSignInValidatesBeforeNetwork(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	assert.ErrorIs(t, auth.SignIn(ctx, "", "secret"), ErrMissingCredentials)
	assert.ErrorIs(t, auth.SignIn(ctx, "   ", "secret"), ErrMissingCredentials)
	assert.ErrorIs(t, auth.SignIn(ctx, "user@example.com", ""), ErrMissingCredentials)
}

func TestSignUpValidatesBeforeNetwork(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	assert.ErrorIs(t, auth.SignUp(ctx, "", "secret", "secret"), ErrMissingCredentials)
	assert.ErrorIs(t, auth.SignUp(ctx, "user@example.com", "secret", "different"), ErrPasswordMismatch)
}

func TestCurrentUserStartsSignedOut(t *testing.T) {
	auth := newTestAuth(t)
	assert.Nil(t, auth.CurrentUser())
}

func TestResumeWithEmptyTokenIsNoop(t *testing.T) {
	auth := newTestAuth(t)
	require.NoError(t, auth.Resume(context.Background(), ""))
	assert.Nil(t, auth.CurrentUser())
}

func TestTokenAttachment(t *testing.T) {
	client, err := NewClient("http://localhost:1/graphql", "")
	require.NoError(t, err)

	assert.Empty(t, client.Token())
	client.SetToken("abc")
	assert.Equal(t, "abc", client.Token())
	client.SetToken("")
	assert.Empty(t, client.Token())
}
