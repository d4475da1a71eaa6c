package validators

import (
	"testing"

	"github.com/anonto42/introhub/backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Kind            string `json:"introduction_type" validate:"required,oneof=GENERAL TARGET"`
	ValueOffer      string `json:"value_offer" validate:"required_if=Kind GENERAL"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"omitempty,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=Password"`
	OTP             string `json:"otp" validate:"omitempty,len=6,numeric"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		input sample
		want  string
	}{
		{"valid", sample{Kind: "TARGET"}, ""},
		{"missing type", sample{}, `"introduction_type" is required`},
		{"bad enum", sample{Kind: "OTHER"}, `"introduction_type" must be one of [GENERAL, TARGET]`},
		{"conditional required", sample{Kind: "GENERAL"}, `"value_offer" is required`},
		{"email", sample{Kind: "TARGET", Email: "nope"}, `"email" must be a valid email`},
		{"min", sample{Kind: "TARGET", Password: "123"}, `"password" length must be at least 6 characters long`},
		{"eqfield", sample{Kind: "TARGET", Password: "123456", ConfirmPassword: "1234567"}, `"confirm_password" must match "password"`},
		{"otp len", sample{Kind: "TARGET", OTP: "12"}, `"otp" length must be 6 characters long`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			appErr := apperrors.From(err)
			assert.Equal(t, apperrors.KindValidation, appErr.Kind)
			assert.Equal(t, tt.want, appErr.Message)
		})
	}
}
