package middleware

import (
	"context"

	"github.com/anonto42/introhub/backend/internal/auth"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
)

// FirebaseResolver accepts Firebase ID tokens of users who signed in with
// Firebase at least once. With Firebase unconfigured every token is
// reported as unknown.
func FirebaseResolver(verifier auth.IDTokenVerifier, users repositories.UserRepository) Resolver {
	return func(ctx context.Context, token string) (*models.User, error) {
		identity, err := verifier.VerifyIDToken(ctx, token)
		if err != nil {
			return nil, errUnknownToken
		}
		return lookup(users.GetUserByFirebaseUID(ctx, identity.Subject))
	}
}
