package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/auth"
	"github.com/anonto42/introhub/backend/internal/email"
	"github.com/anonto42/introhub/backend/internal/models"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/anonto42/introhub/backend/pkg/config"
	"github.com/anonto42/introhub/backend/pkg/logger"
)

const (
	PlatformGoogle   = "google"
	PlatformFirebase = "firebase"

	otpSubject = "Verify-Otp"
)

type RegisterInput struct {
	Email    string `json:"email"`
	Platform string `json:"platform"`
	Code     string `json:"code"`
}

type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Platform string `json:"platform"`
	Code     string `json:"code"`
	IDToken  string `json:"id_token"`
}

type passwordLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type codeLogin struct {
	Code string `json:"code" validate:"required"`
}

type idTokenLogin struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateInfoInput holds optional profile changes. Nil pointers are left
// untouched.
type UpdateInfoInput struct {
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	LinkedinURL     string  `json:"linkedin_url"`
	Password        *string `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
}

type TokenResult struct {
	Token string `json:"token"`
}

// AuthService issues OTPs and session tokens and maintains the signed in
// user's own record.
type AuthService struct {
	base
	users     repositories.UserRepository
	tokens    *auth.TokenManager
	passwords *auth.PasswordHasher
	mailer    email.Sender
	google    auth.GoogleExchanger
	firebase  auth.IDTokenVerifier
	otp       config.OTPConfig
	validator Validator
}

func NewAuthService(
	users repositories.UserRepository,
	tokens *auth.TokenManager,
	passwords *auth.PasswordHasher,
	mailer email.Sender,
	google auth.GoogleExchanger,
	firebase auth.IDTokenVerifier,
	otp config.OTPConfig,
	validator Validator,
	opts ...Option,
) *AuthService {
	return &AuthService{
		base:      newBase(opts),
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		mailer:    mailer,
		google:    google,
		firebase:  firebase,
		otp:       otp,
		validator: validator,
	}
}

// Register starts an email signup by sending an OTP. With platform=google
// the account is created straight from the Google profile and a token is
// returned instead.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*TokenResult, error) {
	if strings.EqualFold(strings.TrimSpace(in.Platform), PlatformGoogle) {
		return s.registerWithGoogle(ctx, in.Code)
	}

	req := EmailInput{Email: normalizeEmail(in.Email)}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var isNew bool
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil && user.SignupCompleted:
		return nil, apperrors.Conflict("User already exist with %s.", req.Email)
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		user = &models.User{ID: s.newID(), Email: req.Email, Status: models.UserInactive}
		isNew = true
	default:
		return nil, apperrors.Internal(err)
	}

	if err := s.issueOTP(ctx, user); err != nil {
		return nil, err
	}

	if isNew {
		err = s.users.CreateUser(ctx, user)
	} else {
		err = s.users.UpdateUser(ctx, user)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return nil, nil
}

func (s *AuthService) registerWithGoogle(ctx context.Context, code string) (*TokenResult, error) {
	identity, err := s.exchangeGoogle(ctx, code)
	if err != nil {
		return nil, err
	}

	_, err = s.users.GetUserByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		return nil, apperrors.Conflict("User already exist with %s", identity.Email)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.Internal(err)
	}

	user := s.userFromIdentity(identity)
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	logger.FromContext(ctx).Info("user signed up with google", "user_id", user.ID)
	return s.token(user)
}

// GetOTP re-sends a login OTP to a user who completed signup.
func (s *AuthService) GetOTP(ctx context.Context, in EmailInput) error {
	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil || !user.SignupCompleted {
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return apperrors.Internal(err)
		}
		return apperrors.NotFound("User does not exist with %s.", in.Email)
	}

	if err := s.issueOTP(ctx, user); err != nil {
		return err
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// VerifyOTP checks the code, marks the email verified and signs the user in.
func (s *AuthService) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*TokenResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.OTP = strings.TrimSpace(in.OTP)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("User does not exist with %s.", in.Email))
	}

	now := s.now()
	if user.OTPExpiry != nil && now.After(*user.OTPExpiry) {
		return nil, apperrors.Validation("OTP expired!")
	}
	if !auth.OTPMatches(user.OTP, in.OTP, user.OTPExpiry, now) {
		return nil, apperrors.Validation("Invalid OTP!")
	}

	user.OTP = ""
	user.OTPExpiry = nil
	user.EmailVerified = true
	user.SignupCompleted = true
	user.Status = models.UserActive
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.token(user)
}

// Login signs a user in with a password, a Google authorization code or a
// Firebase ID token depending on in.Platform.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResult, error) {
	switch strings.ToLower(strings.TrimSpace(in.Platform)) {
	case PlatformGoogle:
		return s.loginWithGoogle(ctx, in.Code)
	case PlatformFirebase:
		return s.loginWithFirebase(ctx, in.IDToken)
	}

	req := passwordLogin{Email: normalizeEmail(in.Email), Password: in.Password}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, notFoundOr(err, "User does not exists.")
	}
	if user.Password == "" {
		return nil, apperrors.Validation("Password is not configured.")
	}
	if err := s.passwords.Verify(user.Password, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return nil, apperrors.Validation("Invalid password. Please try again.")
		}
		return nil, apperrors.Internal(err)
	}
	return s.token(user)
}

func (s *AuthService) loginWithGoogle(ctx context.Context, code string) (*TokenResult, error) {
	identity, err := s.exchangeGoogle(ctx, code)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByEmail(ctx, identity.Email)
	if err != nil {
		return nil, notFoundOr(err, "User does not exists.")
	}
	return s.token(user)
}

// loginWithFirebase resolves the Firebase account to a user, linking it by
// email or creating the user on first sign in.
func (s *AuthService) loginWithFirebase(ctx context.Context, idToken string) (*TokenResult, error) {
	req := idTokenLogin{IDToken: strings.TrimSpace(idToken)}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	identity, err := s.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, identityError(err, "Invalid Firebase ID token")
	}

	user, err := s.users.GetUserByFirebaseUID(ctx, identity.Subject)
	if err == nil {
		return s.token(user)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	addr := normalizeEmail(identity.Email)
	if addr == "" {
		return nil, apperrors.Validation("Firebase account has no email")
	}
	// Linking to or creating an account requires a verified address.
	if !identity.EmailVerified {
		return nil, apperrors.Unauthorized("Firebase email is not verified")
	}

	user, err = s.users.GetUserByEmail(ctx, addr)
	switch {
	case err == nil:
		uid := identity.Subject
		user.FirebaseUID = &uid
		user.EmailVerified = true
		err = s.users.UpdateUser(ctx, user)
	case errors.Is(err, repositories.ErrNotFound):
		user = s.userFromIdentity(identity)
		uid := identity.Subject
		user.FirebaseUID = &uid
		err = s.users.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.token(user)
}

// UpdateInfo applies the non-empty profile fields of in to user.
func (s *AuthService) UpdateInfo(ctx context.Context, in UpdateInfoInput, user *models.User) error {
	if name := strings.TrimSpace(in.Name); name != "" {
		first, last, _ := strings.Cut(name, " ")
		user.FirstName = first
		user.LastName = strings.TrimSpace(last)
	}
	if role := strings.TrimSpace(in.Role); role != "" {
		user.Role = strings.ToUpper(role)
	}
	if link := strings.TrimSpace(in.LinkedinURL); link != "" {
		normalized, err := normalizeLinkedinURL(link)
		if err != nil {
			return err
		}
		user.LinkedinURL = normalized
	}

	if in.Password != nil {
		password := strings.TrimSpace(*in.Password)
		switch {
		case password == "":
			return apperrors.Validation("Password cannot be empty")
		case len(password) < 6:
			return apperrors.Validation("Password must be minimum 6 characters")
		case strings.TrimSpace(in.ConfirmPassword) == "":
			return apperrors.Validation("Confirm password is required with password")
		case password != strings.TrimSpace(in.ConfirmPassword):
			return apperrors.Validation("Password does not match")
		}
		hashed, err := s.passwords.Hash(password)
		if err != nil {
			return apperrors.Internal(err)
		}
		user.Password = hashed
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *AuthService) issueOTP(ctx context.Context, user *models.User) error {
	code, err := auth.GenerateOTP(s.otp.Length)
	if err != nil {
		return apperrors.Internal(err)
	}
	expiry := s.now().Add(s.otp.TTL)

	err = s.mailer.SendEmail(ctx, email.EmailData{
		To:           user.Email,
		Subject:      otpSubject,
		TemplateName: email.TemplateOTP,
		TemplateData: map[string]string{
			"Name":      user.FirstName,
			"Code":      code,
			"ExpiresIn": humanDuration(s.otp.TTL),
		},
	})
	if err != nil {
		return apperrors.Internal(fmt.Errorf("sending otp email: %w", err))
	}

	user.OTP = code
	user.OTPExpiry = &expiry
	return nil
}

func (s *AuthService) exchangeGoogle(ctx context.Context, code string) (*auth.ExternalIdentity, error) {
	req := codeLogin{Code: strings.TrimSpace(code)}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	identity, err := s.google.Exchange(ctx, req.Code)
	if err != nil {
		return nil, identityError(err, "Invalid Google authorization code")
	}
	identity.Email = normalizeEmail(identity.Email)
	if identity.Email == "" {
		return nil, apperrors.Validation("Google account has no email")
	}
	return identity, nil
}

func (s *AuthService) token(user *models.User) (*TokenResult, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &TokenResult{Token: token}, nil
}

func identityError(err error, msg string) error {
	if errors.Is(err, auth.ErrProviderDisabled) {
		return apperrors.Internal(err)
	}
	return &apperrors.Error{Kind: apperrors.KindUnauthorized, Message: msg, Err: err}
}

func (s *AuthService) userFromIdentity(identity *auth.ExternalIdentity) *models.User {
	return &models.User{
		ID:              s.newID(),
		Email:           normalizeEmail(identity.Email),
		FirstName:       identity.FirstName,
		LastName:        identity.LastName,
		EmailVerified:   identity.EmailVerified,
		SignupCompleted: true,
		Status:          models.UserActive,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeLinkedinURL accepts profile links with or without a scheme and
// returns them as https URLs.
func normalizeLinkedinURL(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", apperrors.Validation("Invalid LinkedIn URL")
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "linkedin.com" && !strings.HasSuffix(host, ".linkedin.com") {
		return "", apperrors.Validation("Invalid LinkedIn URL")
	}
	u.Scheme = "https"
	return u.String(), nil
}

func humanDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}
