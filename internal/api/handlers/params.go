package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
)

// ParseDateTime разбирает RFC3339 или "YYYY-MM-DD HH:MM" в часовом поясе loc
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(domain.DateTimeFormat, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q: expected RFC3339 or %q", raw, domain.DateTimeFormat)
	}
	return t.UTC(), nil
}

// QueryInt64 возвращает необязательный положительный int64 из query-параметра name
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

// QueryDateTime возвращает необязательную дату-время из query-параметра name
func QueryDateTime(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDateTime(raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
