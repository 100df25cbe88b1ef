package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/log"
)

// Validation failures detected before any request is made
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// Auth implements domain.AuthService against the catalog service.  On
// successful sign in the token is attached to the shared client and handed to
// onToken so the caller can persist it.
type Auth struct {
	client  *Client
	onToken func(token string)

	mu   sync.RWMutex
	user *domain.User
}

// NewAuth creates the auth service.  onToken is called with the new token after
// sign in / sign up, and with "" after sign out; pass nil to skip persistence.
func NewAuth(client *Client, onToken func(token string)) *Auth {
	if onToken == nil {
		onToken = func(string) {}
	}
	return &Auth{client: client, onToken: onToken}
}

// CurrentUser returns the authenticated user, or nil when signed out
func (a *Auth) CurrentUser() *domain.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Resume restores a session from a previously persisted token.  An invalid or
// expired token just leaves the service signed out.
func (a *Auth) Resume(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	a.client.SetToken(token)
	user, err := a.fetchCurrentUser(ctx)
	if err != nil {
		a.client.SetToken("")
		log.Warn("Stored session token is no longer valid", "error", err)
		return err
	}

	a.setUser(user)
	log.Info("Resumed session", "user_id", user.ID)
	return nil
}

func (a *Auth) SignIn(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}

	mutation := `
        mutation ($email: String!, $password: String!) {
            signIn(email: $email, password: $password) {
                token
                user {
                    id
                    email
                }
            }
        }
    `

	var response struct {
		SignIn sessionPayload
	}

	variables := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	if err := a.client.Query(ctx, mutation, variables, &response); err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}

	a.adoptSession(response.SignIn)
	log.Info("Signed in", "user_id", response.SignIn.User.ID)
	return nil
}

func (a *Auth) SignUp(ctx context.Context, email, password, confirmPassword string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	mutation := `
        mutation ($email: String!, $password: String!) {
            signUp(email: $email, password: $password) {
                token
                user {
                    id
                    email
                }
            }
        }
    `

	var response struct {
		SignUp sessionPayload
	}

	variables := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	if err := a.client.Query(ctx, mutation, variables, &response); err != nil {
		return fmt.Errorf("sign up failed: %w", err)
	}

	a.adoptSession(response.SignUp)
	log.Info("Signed up", "user_id", response.SignUp.User.ID)
	return nil
}

// SignOut ends the session.  The server-side revocation is best effort; the
// local session is always cleared.
func (a *Auth) SignOut(ctx context.Context) error {
	mutation := `
        mutation {
            signOut
        }
    `

	var response struct {
		SignOut bool
	}
	if err := a.client.Query(ctx, mutation, nil, &response); err != nil {
		log.Warn("Failed to revoke session on server, clearing local session anyway", "error", err)
	}

	a.client.SetToken("")
	a.setUser(nil)
	a.onToken("")
	log.Info("Signed out")
	return nil
}

type sessionPayload struct {
	Token string
	User  struct {
		ID    string
		Email string
	}
}

func (a *Auth) adoptSession(session sessionPayload) {
	a.client.SetToken(session.Token)
	a.setUser(&domain.User{ID: session.User.ID, Email: session.User.Email})
	a.onToken(session.Token)
}

func (a *Auth) setUser(user *domain.User) {
	a.mu.Lock()
	a.user = user
	a.mu.Unlock()
}

func (a *Auth) fetchCurrentUser(ctx context.Context) (*domain.User, error) {
	query := `
        query {
            viewer {
                id
                email
            }
        }
    `

	var response struct {
		Viewer struct {
			ID    string
			Email string
		}
	}

	if err := a.client.Query(ctx, query, nil, &response); err != nil {
		return nil, err
	}
	if response.Viewer.ID == "" {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return &domain.User{ID: response.Viewer.ID, Email: response.Viewer.Email}, nil
}
