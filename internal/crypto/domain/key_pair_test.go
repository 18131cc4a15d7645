package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserID(t *testing.T) {
	assert.NoError(t, ValidateUserID("alice"))
	assert.NoError(t, ValidateUserID("user-with-dash"))
	assert.ErrorIs(t, ValidateUserID(""), ErrInvalidUserID)
	assert.ErrorIs(t, ValidateUserID("   "), ErrInvalidUserID)
}
