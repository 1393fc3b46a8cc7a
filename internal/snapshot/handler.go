package snapshot

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
	api.GET("/export", h.Export)
	api.POST("/import", h.Import)
}

func (h *Handler) Export(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	snap, err := h.svc.Export(c.Request().Context(), aid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="acuchart-export.json"`)
	return c.JSON(http.StatusOK, snap)
}

func (h *Handler) Import(c echo.Context) error {
	aid, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	var snap Snapshot
	if err := c.Bind(&snap); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	purge := c.QueryParam("purge") == "true"

	report, err := h.svc.Import(c.Request().Context(), aid, &snap, purge)
	if err != nil {
		if errors.Is(err, ErrUnsupportedSchema) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}
