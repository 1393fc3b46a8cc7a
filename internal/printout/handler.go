package printout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
	"github.com/acuchart/acuchart/internal/platform/auth"
)

type ChartStore interface {
	Get(ctx context.Context, accountID uuid.UUID, fileNo string) (*chart.Chart, error)
}

type ProfileStore interface {
	Get(ctx context.Context, accountID uuid.UUID) (*clinic.Profile, error)
}

type Handler struct {
	charts   ChartStore
	profiles ProfileStore
}

func NewHandler(charts ChartStore, profiles ProfileStore) *Handler {
	return &Handler{charts: charts, profiles: profiles}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/charts/:fileNo/pdf", h.ChartPDF)
}

// ChartPDF renders the chart and streams it as a PDF attachment.
func (h *Handler) ChartPDF(c echo.Context) error {
	ctx := c.Request().Context()
	aid, ok := auth.AccountIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	ch, err := h.charts.Get(ctx, aid, c.Param("fileNo"))
	if err != nil {
		if errors.Is(err, chart.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chart not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile, err := h.profiles.Get(ctx, aid)
	if err != nil && !errors.Is(err, clinic.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	doc, err := Render(ch, profile)
	if err != nil {
		if errors.Is(err, ErrRenderTargetMissing) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	if err := ExportPDF(doc, &buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", Filename(doc)))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
