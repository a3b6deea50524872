package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndValidate(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	id := uuid.New()
	token, err := issuer.Issue(id)
	require.NoError(t, err)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.DesignID)
	assert.Equal(t, "design_"+id.String(), claims.Subject)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("fedcba9876543210fedcba9876543210", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	issued := time.Now()
	issuer.now = func() time.Time { return issued }
	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestNewTokenIssuerRequiresLongSecret(t *testing.T) {
	_, err := NewTokenIssuer("short", time.Hour)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	require.NoError(t, err)
	_, err = issuer.Validate("not-a-token")
	assert.Error(t, err)
}
