package session

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTime indica um horário que não pôde ser normalizado
var ErrInvalidTime = errors.New("invalid time")

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
	meridiemPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
)

// NormalizeTime converte "5pm", "6:30 PM" ou "17:00" em "HH:MM" (24h).
// Valores já no formato H:MM ou HH:MM são devolvidos sem alteração.
func NormalizeTime(s string) (string, error) {
	text := strings.ToLower(strings.TrimSpace(s))

	if clockPattern.MatchString(text) {
		return text, nil
	}

	m := meridiemPattern.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	switch {
	case m[3] == "pm" && hour != 12:
		hour += 12
	case m[3] == "am" && hour == 12:
		hour = 0
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParseClock devolve hora e minuto de um horário normalizado
func ParseClock(s string) (hour, minute int, err error) {
	normalized, err := NormalizeTime(s)
	if err != nil {
		return 0, 0, err
	}
	m := clockPattern.FindStringSubmatch(normalized)
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return hour, minute, nil
}

// FindMatching seleciona as reuniões que correspondem à dica de horário.
// Sem dica, devolve apenas a última; dica inválida não casa nada.
func FindMatching(entries []Meeting, hint string, loc *time.Location) []Meeting {
	if len(entries) == 0 {
		return nil
	}
	if strings.TrimSpace(hint) == "" {
		return []Meeting{entries[len(entries)-1]}
	}

	hour, minute, err := ParseClock(hint)
	if err != nil {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}

	var out []Meeting
	for _, e := range entries {
		start := e.Start.In(loc)
		if start.Hour() == hour && start.Minute() == minute {
			out = append(out, e)
		}
	}
	return out
}
