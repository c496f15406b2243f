package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp возвращается, если строка не подходит ни под один поддерживаемый формат
var ErrInvalidTimestamp = errors.New("invalid timestamp format")

// Форматы без часового пояса интерпретируются в переданной локации
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp разбирает RFC 3339 или локальное время вида 2025-10-27T15:30
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
