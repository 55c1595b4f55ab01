package str

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// UUIDStr returns a uuid string without dashes
func UUIDStr() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// ParseInt parse decimal string
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err
}

// ParsePositiveInt parse positive decimal string
func ParsePositiveInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err == nil && v <= 0 {
		err = fmt.Errorf("value expect positive, got %d", v)
	}
	return v, err
}

// MustParseInt must parse decimal string
func MustParseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
