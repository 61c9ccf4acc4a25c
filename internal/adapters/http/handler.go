package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/horoscope-go/internal/app"
	"github.com/randomtoy/horoscope-go/internal/domain"
)

const cacheControl = "s-maxage=3600, stale-while-revalidate=60"

type Handler struct {
	svc *app.HoroscopeService
}

func NewHandler(svc *app.HoroscopeService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.Any("/", h.Horoscope)
	e.Any("/api/horoscope", h.Horoscope)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Horoscope(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: codeMethodNotAllowed})
	}

	fields, err := ReadBody(c.Request().Header.Get(echo.HeaderContentType), c.Request().Body)
	if err != nil {
		return mapError(c, err)
	}

	req, err := h.svc.NewRequest(fields)
	if err != nil {
		return mapError(c, err)
	}

	resp, err := h.svc.Generate(c.Request().Context(), req)
	if err != nil {
		return mapError(c, err)
	}

	c.Response().Header().Set("Cache-Control", cacheControl)
	return c.JSON(http.StatusOK, resp.Horoscope)
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	var upErr *domain.UpstreamError
	var modelErr *domain.ModelOutputError
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, domain.ErrInvalidJSON):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidJSON, Hint: hintInvalidJSON})
	case errors.Is(err, domain.ErrInvalidForm):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidForm, Hint: hintInvalidForm})
	case errors.Is(err, domain.ErrMissingSign):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeMissingSign, Hint: hintMissingSign})
	case errors.Is(err, domain.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeInvalidDate, Hint: hintInvalidDate})
	case errors.As(err, &upErr):
		slog.Error("upstream LLM failure", "request_id", requestID, "status", upErr.StatusCode, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: codeUpstream, Detail: upErr.Detail()})
	case errors.As(err, &modelErr):
		slog.Error("invalid JSON from model", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: codeInvalidModelJSON, Raw: modelErr.Raw})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, ErrorResponse{Error: httpErrorCode(httpErr.Code)})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: codeFailed, Detail: err.Error()})
	}
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return codeNotFound
	case http.StatusMethodNotAllowed:
		return codeMethodNotAllowed
	case http.StatusRequestEntityTooLarge:
		return codePayloadTooLarge
	default:
		return codeFailed
	}
}

// ErrorHandler renders errors that escape handlers (router misses, body
// limits, recovered panics) in the same flat shape as handler errors.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if err := mapError(c, err); err != nil {
		slog.Error("write error response", "error", err)
	}
}
