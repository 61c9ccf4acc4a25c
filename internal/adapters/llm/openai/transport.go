package openai

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

type errorBodyKey struct{}

// errorBody receives the raw payload of a failed upstream response.
type errorBody struct {
	raw []byte
}

func withErrorBody(ctx context.Context) (context.Context, *errorBody) {
	sink := &errorBody{}
	return context.WithValue(ctx, errorBodyKey{}, sink), sink
}

// captureTransport copies non-success response bodies into the errorBody
// carried by the request context, then hands the response on untouched.
type captureTransport struct {
	Base http.RoundTripper
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	sink, ok := req.Context().Value(errorBodyKey{}).(*errorBody)
	if !ok || (resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest) {
		return resp, nil
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	sink.raw = raw
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, nil
}
