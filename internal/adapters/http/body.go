package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/randomtoy/horoscope-go/internal/domain"
)

// requestFields are the body members that must be strings when sent as JSON.
var requestFields = []string{"sign", "sign_label", "date"}

// formLike matches bare key=value bodies sent without a form content type.
var formLike = regexp.MustCompile(`^[^=\s]+=`)

// ReadBody reads the whole body and flattens it into string fields according
// to the declared content type. Unrecognised non-empty text lands under "raw".
func ReadBody(contentType string, r io.Reader) (map[string]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	raw := strings.TrimSpace(string(b))
	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "application/json"):
		return parseJSON(raw)
	case strings.Contains(ct, "application/x-www-form-urlencoded"), formLike.MatchString(raw):
		return parseForm(raw)
	case raw != "":
		return map[string]string{"raw": raw}, nil
	default:
		return map[string]string{}, nil
	}
}

func parseJSON(raw string) (map[string]string, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidJSON, err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return map[string]string{}, nil
	}

	fields := make(map[string]string, len(obj))
	for k, val := range obj {
		if s, ok := val.(string); ok {
			fields[k] = s
		}
	}
	for _, k := range requestFields {
		val, present := obj[k]
		if !present || val == nil {
			continue
		}
		if _, ok := val.(string); !ok {
			return nil, fmt.Errorf("%w: %q must be a string", domain.ErrInvalidJSON, k)
		}
	}
	return fields, nil
}

func parseForm(raw string) (map[string]string, error) {
	raw = strings.ReplaceAll(raw, "\r", "")
	raw = strings.ReplaceAll(raw, "&", "\n")

	fields := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		k, v, _ := strings.Cut(line, "=")
		if k == "" {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidForm, err)
		}
		val, err := url.PathUnescape(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidForm, err)
		}
		fields[key] = val
	}
	return fields, nil
}
