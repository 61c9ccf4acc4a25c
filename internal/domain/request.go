package domain

import (
	"strings"
	"time"
)

// Request is a validated horoscope request.
type Request struct {
	Sign      string
	SignLabel string
	Date      string
}

// Label is the display name used in the prompt: the sign label if given,
// otherwise the raw sign code.
func (r Request) Label() string {
	if r.SignLabel != "" {
		return r.SignLabel
	}
	return r.Sign
}

// NewRequest builds a Request from parsed body fields. A missing date
// defaults to the clock's current UTC day.
func NewRequest(fields map[string]string, clock Clock) (Request, error) {
	sign := strings.TrimSpace(fields["sign"])
	if sign == "" {
		return Request{}, ErrMissingSign
	}

	date := strings.TrimSpace(fields["date"])
	if date == "" {
		date = clock.Now().UTC().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return Request{}, ErrInvalidDate
	}

	return Request{
		Sign:      sign,
		SignLabel: strings.TrimSpace(fields["sign_label"]),
		Date:      date,
	}, nil
}
