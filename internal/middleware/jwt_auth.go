package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/auth"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

var errUnknownToken = errors.New("token not recognised")

// Resolver maps a bearer token to the user it was issued for. It returns
// errUnknownToken when the token is not one it understands.
type Resolver func(ctx context.Context, token string) (*models.User, error)

// JWTResolver accepts session tokens issued by the auth service.
func JWTResolver(tokens *auth.TokenManager, users repositories.UserRepository) Resolver {
	return func(ctx context.Context, token string) (*models.User, error) {
		claims, err := tokens.Validate(token)
		if err != nil {
			return nil, errUnknownToken
		}
		return lookup(users.GetUserByID(ctx, claims.UserID))
	}
}

// AuthMiddleware requires "Authorization: Bearer <token>" and stores the
// resolved user on the echo context. Resolvers are tried in order.
func AuthMiddleware(resolvers ...Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return apperrors.Unauthorized("Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return apperrors.Unauthorized("Invalid Authorization header format")
			}

			ctx := c.Request().Context()
			for _, resolve := range resolvers {
				user, err := resolve(ctx, parts[1])
				if errors.Is(err, errUnknownToken) {
					continue
				}
				if err != nil {
					return err
				}

				c.Set(userContextKey, user)
				c.SetRequest(c.Request().WithContext(logger.WithUserID(ctx, user.ID)))
				return next(c)
			}
			return apperrors.Unauthorized("Invalid token")
		}
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok && user != nil
}

func lookup(user *models.User, err error) (*models.User, error) {
	if err == nil {
		return user, nil
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Unauthorized("User not found")
	}
	return nil, apperrors.Internal(err)
}
