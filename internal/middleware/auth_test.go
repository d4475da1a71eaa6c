package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/auth"
	"github.com/anonto42/introhub/backend/internal/mocks"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func runAuth(t *testing.T, header string, resolvers ...Resolver) (*models.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var got *models.User
	err := AuthMiddleware(resolvers...)(func(c echo.Context) error {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		got = user
		return c.NoContent(http.StatusOK)
	})(c)
	return got, err
}

func TestAuthMiddlewareJWT(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens := auth.NewTokenManager("secret", time.Hour)

	token, err := tokens.Generate(&models.User{ID: "u1", Email: "ada@example.com"})
	require.NoError(t, err)

	users.EXPECT().GetUserByID(gomock.Any(), "u1").Return(&models.User{ID: "u1"}, nil)
	user, err := runAuth(t, "Bearer "+token, JWTResolver(tokens, users))
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	users.EXPECT().GetUserByID(gomock.Any(), "u1").Return(nil, repositories.ErrNotFound)
	_, err = runAuth(t, "bearer "+token, JWTResolver(tokens, users))
	assert.Equal(t, "User not found", apperrors.From(err).Message)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens := auth.NewTokenManager("secret", time.Hour)
	jwtOnly := JWTResolver(tokens, users)

	tests := []struct {
		header  string
		message string
	}{
		{"", "Missing Authorization header"},
		{"Token abc", "Invalid Authorization header format"},
		{"Bearer", "Invalid Authorization header format"},
		{"Bearer not-a-jwt", "Invalid token"},
	}
	for _, tt := range tests {
		_, err := runAuth(t, tt.header, jwtOnly)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized), tt.header)
		assert.Equal(t, tt.message, apperrors.From(err).Message)
	}
}

func TestAuthMiddlewareFallsBackToFirebase(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	verifier := mocks.NewMockIDTokenVerifier(ctrl)
	tokens := auth.NewTokenManager("secret", time.Hour)

	verifier.EXPECT().VerifyIDToken(gomock.Any(), "fb-token").Return(&auth.ExternalIdentity{Subject: "fb-1"}, nil)
	users.EXPECT().GetUserByFirebaseUID(gomock.Any(), "fb-1").Return(&models.User{ID: "u7"}, nil)

	user, err := runAuth(t, "Bearer fb-token", JWTResolver(tokens, users), FirebaseResolver(verifier, users))
	require.NoError(t, err)
	assert.Equal(t, "u7", user.ID)

	verifier.EXPECT().VerifyIDToken(gomock.Any(), "junk").Return(nil, errors.New("bad token"))
	_, err = runAuth(t, "Bearer junk", JWTResolver(tokens, users), FirebaseResolver(verifier, users))
	assert.Equal(t, "Invalid token", apperrors.From(err).Message)
}
