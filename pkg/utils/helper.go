package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseInt converts string to a positive int, falling back to defaultValue
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat returns nil for empty, malformed or non-finite input.
func ParseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// GenerateReference creates a human readable booking reference. The suffix
// comes from the booking id, so references are as unique as the ids.
// Format: BOOK-YYYYMMDD-HHMMSS-XXXXXXXXXXXX
func GenerateReference(now time.Time, id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("BOOK-%s-%s-%s",
		now.Format("20060102"),
		now.Format("150405"),
		strings.ToUpper(hex[len(hex)-12:]),
	)
}
