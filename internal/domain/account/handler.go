package account

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/acuchart/acuchart/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the public auth surface and the admin-gated
// account management surface.
func (h *Handler) RegisterRoutes(public, admin *echo.Group) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	public.GET("/verify", h.Verify)

	admin.GET("/accounts", h.ListAccounts)
	admin.GET("/accounts/pending", h.ListPendingAccounts)
	admin.POST("/accounts/:id/approve", h.ApproveAccount)
	admin.POST("/accounts/:id/reject", h.RejectAccount)
	admin.DELETE("/accounts/:id", h.DeleteAccount)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sess)
}

func (h *Handler) Login(c echo.Context) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Login(c.Request().Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, ErrPendingApproval) {
			return echo.NewHTTPError(http.StatusForbidden, "account is awaiting administrator approval")
		}
		// One message for unknown username and wrong password, so the
		// endpoint cannot be used to enumerate usernames.
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidCredential) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, sess)
}

// Verify returns the account for the already-authenticated request. The
// auth middleware has validated the token by the time this runs.
func (h *Handler) Verify(c echo.Context) error {
	id, ok := auth.AccountIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAccounts(c echo.Context) error {
	items, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListPendingAccounts(c echo.Context) error {
	items, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ApproveAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	approver, _ := auth.AccountIDFromContext(c.Request().Context())
	if err := h.svc.Approve(c.Request().Context(), id, approver); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RejectAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Reject(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "account not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
