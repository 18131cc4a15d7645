package validation

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/chatcrypt/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("sender_id: cannot be blank."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "sender_id")
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		shouldErr bool
	}{
		{name: "simple", userID: "alice"},
		{name: "uuid", userID: "0194f1d2-7c1e-7a3b-9c4d-5e6f7a8b9c0d"},
		{name: "empty", userID: "", shouldErr: true},
		{name: "blank", userID: "   ", shouldErr: true},
		{name: "leading whitespace", userID: " alice", shouldErr: true},
		{name: "too long", userID: strings.Repeat("a", MaxUserIDLength+1), shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.userID, UserID...)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMaxBytes(t *testing.T) {
	rule := MaxBytes(4)
	assert.NoError(t, validation.Validate("abcd", rule))
	assert.Error(t, validation.Validate("abcde", rule))
	assert.Error(t, validation.Validate("ééé", rule), "multi-byte runes count as bytes")
}

func TestBase64(t *testing.T) {
	assert.NoError(t, validation.Validate("aGVsbG8=", Base64))
	assert.NoError(t, validation.Validate("", Base64))
	assert.Error(t, validation.Validate("not base64!", Base64))
	assert.Error(t, validation.Validate(42, Base64))
}

func TestBase64Length(t *testing.T) {
	rule := Base64Length(12)
	assert.NoError(t, validation.Validate(base64.StdEncoding.EncodeToString(make([]byte, 12)), rule))
	assert.NoError(t, validation.Validate("", rule))
	assert.Error(t, validation.Validate(base64.StdEncoding.EncodeToString(make([]byte, 11)), rule))
	assert.Error(t, validation.Validate("@@@", rule))
}
