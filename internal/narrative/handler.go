package narrative

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/charts/:fileNo/narrative/present-illness", h.PresentIllness)
	api.POST("/charts/:fileNo/narrative/diagnosis", h.Diagnosis)
	api.POST("/charts/:fileNo/narrative/soap", h.SOAP)
}

func (h *Handler) PresentIllness(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	ch, err := h.svc.PresentIllness(c.Request().Context(), aid, c.Param("fileNo"))
	if err != nil {
		return narrativeError(err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *Handler) Diagnosis(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	ch, err := h.svc.DiagnosisPlan(c.Request().Context(), aid, c.Param("fileNo"))
	if err != nil {
		return narrativeError(err)
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *Handler) SOAP(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	note, err := h.svc.SOAPNote(c.Request().Context(), aid, c.Param("fileNo"))
	if err != nil {
		return narrativeError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"soap_note": note})
}

func narrativeError(err error) error {
	switch {
	case errors.Is(err, chart.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "chart not found")
	case errors.Is(err, chart.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "chart was modified since it was loaded")
	case errors.Is(err, ErrUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "narrative service unavailable")
	case errors.Is(err, ErrMalformed):
		return echo.NewHTTPError(http.StatusBadGateway, "narrative response malformed")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
