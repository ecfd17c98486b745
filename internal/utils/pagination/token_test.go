package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	reviewedAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(reviewedAt, "apr-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	at, id, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, reviewedAt.Equal(at), "Time should match after decode")
	assert.Equal(t, "apr-42", id)

	// Non-UTC input is normalized.
	local := reviewedAt.In(time.FixedZone("IST", 5*3600+1800))
	at, _, err = DecodeToken(EncodeToken(local, "apr-42"))
	require.NoError(t, err)
	assert.True(t, reviewedAt.Equal(at))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("notadate|apr-1")))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "time parse")
}

func TestAfter(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, After(base.Add(-time.Second), "z", base, "a"))
	assert.False(t, After(base.Add(time.Second), "a", base, "z"))
	assert.True(t, After(base, "a", base, "b"))
	assert.False(t, After(base, "b", base, "b"))
}
