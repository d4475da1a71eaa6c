package services

import (
	"errors"
	"io"
	"time"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/anonto42/introhub/backend/internal/repositories"
	"github.com/google/uuid"
)

// Validator checks struct tags. *validators.CustomValidator satisfies it.
type Validator interface {
	Validate(i interface{}) error
}

// Upload is a file received with a request.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Option customizes the clock and id source of a service.
type Option func(*base)

type base struct {
	now   func() time.Time
	newID func() string
}

func newBase(opts []Option) base {
	b := base{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(b *base) { b.newID = newID }
}

// notFoundOr maps repositories.ErrNotFound to a NOT_FOUND error carrying msg
// and anything else to INTERNAL.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("%s", msg)
	}
	return apperrors.Internal(err)
}
