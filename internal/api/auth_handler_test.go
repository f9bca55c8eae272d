package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/mocks"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        any
		registerErr error
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid signup",
			body:       SignupRequest{Email: "new@example.com", Password: "secret"},
			wantStatus: http.StatusCreated,
		},
		{
			name:        "malformed body",
			body:        `{"email":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "duplicate email",
			body:        SignupRequest{Email: "taken@example.com", Password: "secret"},
			registerErr: store.NewDuplicateError(store.EntityUser, "email", "taken@example.com", nil),
			wantStatus:  http.StatusConflict,
			wantMessage: "email taken@example.com is already in use",
		},
		{
			name:        "schema validation",
			body:        SignupRequest{Email: "not-an-email", Password: "secret"},
			registerErr: store.NewValidationError(store.EntityUser,
				(&domain.User{Name: "ok", About: "ok", Avatar: "https://a.b/c"}).Validate()),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid user data: Email",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got service.RegisterInput
			users := &mocks.MockUserService{
				RegisterFn: func(_ context.Context, in service.RegisterInput) (*domain.User, error) {
					got = in
					if tc.registerErr != nil {
						return nil, tc.registerErr
					}
					return domain.NewUser(in.Name, in.About, in.Avatar, in.Email, "$2a$10$hash"), nil
				},
			}
			h := NewAuthHandler(users, &mocks.MockTokenService{}, false, nil)

			w := serve(t, http.MethodPost, "/signup", "/signup", h.Signup, "", tc.body)

			require.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			if tc.wantStatus != http.StatusCreated {
				assert.Equal(t, tc.wantMessage, decodeMessage(t, w))
				return
			}

			var user map[string]any
			decodeData(t, w, &user)
			assert.Equal(t, "new@example.com", user["email"])
			assert.Equal(t, domain.DefaultUserName, user["name"])
			assert.NotContains(t, w.Body.String(), "$2a$10$hash", "password hash must not be serialized")
			assert.Equal(t, "secret", got.Password)
		})
	}
}

func TestSignin(t *testing.T) {
	t.Parallel()

	user := domain.NewUser("", "", "", "a@example.com", "hash")
	users := &mocks.MockUserService{
		AuthenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email == "a@example.com" && password == "right" {
				return user, nil
			}
			return nil, apperr.Wrap(apperr.KindUnauthorized, service.MsgInvalidCredentials, service.ErrInvalidCredentials)
		},
	}
	tokens := &mocks.MockTokenService{
		IssueFn: func(_ context.Context, subjectID string) (string, error) {
			return "token-for-" + subjectID, nil
		},
	}

	t.Run("success sets token and cookie", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(users, tokens, true, nil)

		w := serve(t, http.MethodPost, "/signin", "/signin", h.Signin, "",
			SigninRequest{Email: "a@example.com", Password: "right"})

		require.Equal(t, http.StatusOK, w.Code)
		var body TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "token-for-"+user.ID, body.Token)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, TokenCookieName, c.Name)
		assert.Equal(t, body.Token, c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
		assert.Equal(t, int(auth.TokenLifetime.Seconds()), c.MaxAge)
		assert.Equal(t, "/", c.Path)
	})

	failures := map[string]any{
		"wrong password": SigninRequest{Email: "a@example.com", Password: "wrong"},
		"unknown email":  SigninRequest{Email: "b@example.com", Password: "right"},
		"malformed body": `not json`,
		"empty body":     nil,
	}
	for name, body := range failures {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			h := NewAuthHandler(users, tokens, false, nil)

			w := serve(t, http.MethodPost, "/signin", "/signin", h.Signin, "", body)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, service.MsgInvalidCredentials, decodeMessage(t, w))
			assert.Empty(t, w.Result().Cookies())
		})
	}

	t.Run("token failure is internal", func(t *testing.T) {
		t.Parallel()
		h := NewAuthHandler(users, &mocks.MockTokenService{Err: errors.New("signing key unavailable")}, false, nil)

		w := serve(t, http.MethodPost, "/signin", "/signin", h.Signin, "",
			SigninRequest{Email: "a@example.com", Password: "right"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperr.MsgInternal, decodeMessage(t, w))
	})
}

func TestNewAuthHandlerRequiresDependencies(t *testing.T) {
	assert.Panics(t, func() { NewAuthHandler(nil, &mocks.MockTokenService{}, false, nil) })
	assert.Panics(t, func() { NewAuthHandler(&mocks.MockUserService{}, nil, false, nil) })
}
