package chart

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acuchart/acuchart/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/charts", h.ListCharts)
	api.GET("/charts/:fileNo", h.GetChart)
	api.PUT("/charts/:fileNo", h.SaveChart)
	api.DELETE("/charts/:fileNo", h.DeleteChart)
}

func (h *Handler) ListCharts(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	items, err := h.svc.List(c.Request().Context(), aid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetChart(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	ch, err := h.svc.Get(c.Request().Context(), aid, c.Param("fileNo"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *Handler) SaveChart(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var ch Chart
	if err := c.Bind(&ch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ch.FileNo = c.Param("fileNo")

	expected := ch.Version
	if err := h.svc.Save(c.Request().Context(), aid, &ch, expected); err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Error())
		case errors.Is(err, ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "chart was modified since it was loaded")
		case errors.Is(err, ErrChartTypeImmutable):
			return echo.NewHTTPError(http.StatusConflict, "chart type cannot change after creation")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, ch)
}

func (h *Handler) DeleteChart(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	if err := h.svc.Delete(c.Request().Context(), aid, c.Param("fileNo")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
