package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/shopdesk_backend/internal/apperrors"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded token from the sort time and id of the last row
// of a page. The id breaks ties between rows sharing a timestamp.
func EncodeToken(at time.Time, id string) string {
	tokenStr := fmt.Sprintf("%s|%s", at.UTC().Format(timeFormat), id)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the token back into its time and id. Every failure wraps
// apperrors.ErrValidation since the token comes from the client.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (base64 decode): %v", apperrors.ErrValidation, err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (split)", apperrors.ErrValidation)
	}

	at, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid pagination token format (time parse): %v", apperrors.ErrValidation, err)
	}
	return at, parts[1], nil
}

// After reports whether a row sorted by (at DESC, id DESC) comes after the cursor.
func After(at time.Time, id string, cursorAt time.Time, cursorID string) bool {
	if at.Equal(cursorAt) {
		return id < cursorID
	}
	return at.Before(cursorAt)
}
