package auth

//go:generate mockgen -source=./identity.go -destination=../mocks/mock_identity.go -package=mocks GoogleExchanger,IDTokenVerifier

import (
	"context"
	"errors"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/introhub/backend/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var ErrProviderDisabled = errors.New("identity provider not configured")

// ExternalIdentity is what a third party login vouches for.
type ExternalIdentity struct {
	Subject       string
	Email         string
	FirstName     string
	LastName      string
	EmailVerified bool
}

// GoogleExchanger turns an OAuth authorization code into a verified identity.
type GoogleExchanger interface {
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}

// IDTokenVerifier checks a Firebase ID token.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

type GoogleOAuth struct {
	config *oauth2.Config
}

func NewGoogleOAuth(cfg config.GoogleConfig) *GoogleOAuth {
	return &GoogleOAuth{config: &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			oauth2api.UserinfoEmailScope,
			oauth2api.UserinfoProfileScope,
		},
	}}
}

func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*ExternalIdentity, error) {
	if g.config.ClientID == "" {
		return nil, ErrProviderDisabled
	}

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging google code: %w", err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("creating google oauth2 service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching google userinfo: %w", err)
	}

	return &ExternalIdentity{
		Subject:       info.Id,
		Email:         info.Email,
		FirstName:     info.GivenName,
		LastName:      info.FamilyName,
		EmailVerified: info.VerifiedEmail != nil && *info.VerifiedEmail,
	}, nil
}

// FirebaseVerifier adapts the Firebase admin auth client.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier accepts a nil client, in which case every
// verification fails with ErrProviderDisabled.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (f *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	if f.client == nil {
		return nil, ErrProviderDisabled
	}

	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verifying firebase id token: %w", err)
	}

	identity := &ExternalIdentity{Subject: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.FirstName = name
	}
	return identity, nil
}
