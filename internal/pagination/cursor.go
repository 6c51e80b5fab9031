package pagination

import (
	"encoding/base64"
	"errors"
	"strconv"
)

// Cursor represents a decoded pagination cursor for id-ordered listings
type Cursor struct {
	LastID int64
}

// PageResult represents a paginated result set
type PageResult[T any] struct {
	Items   []T    `json:"items"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"has_more"`
}

var (
	ErrInvalidCursor = errors.New("invalid cursor format")
)

// EncodeCursor creates a base64-encoded cursor from the last item ID
func EncodeCursor(lastID int64) string {
	if lastID <= 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(strconv.FormatInt(lastID, 10)))
}

// DecodeCursor decodes a base64-encoded cursor and returns the last ID
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	lastID, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil || lastID <= 0 {
		return nil, ErrInvalidCursor
	}

	return &Cursor{LastID: lastID}, nil
}
