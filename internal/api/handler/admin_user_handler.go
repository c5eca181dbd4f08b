package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// AdminUserHandler exposes privileged account management. Creating a user
// here never touches the caller's own session, which is why the operation
// lives server side instead of in the client.
type AdminUserHandler struct {
	authService ports.AuthService
	profiles    ports.ProfileRepository
}

func NewAdminUserHandler(authService ports.AuthService, profiles ports.ProfileRepository) *AdminUserHandler {
	return &AdminUserHandler{authService: authService, profiles: profiles}
}

type adminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required,oneof=owner admin sales"`
}

type updateProfileRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required,oneof=owner admin sales"`
}

// Create registers a new account on behalf of an admin caller.
//
// @Summary      Create a user (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminCreateUserRequest  true  "Account details"
// @Success      201   {object}  domain.Profile
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/users [post]
func (h *AdminUserHandler) Create(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req adminCreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.authService.AdminCreateUser(c.Request().Context(), role, ports.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, profile)
}

// List returns all profiles, optionally filtered by role.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Filter by role"
// @Success      200   {array}   domain.Profile
// @Router       /v1/admin/users [get]
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if role := c.QueryParam("role"); role != "" {
		if !domain.ValidRole(domain.Role(role)) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
		}
		profiles, err := h.profiles.ListByRole(ctx, domain.Role(role))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, profiles)
	}

	profiles, err := h.profiles.List(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// Update edits a user's profile fields.
//
// @Summary      Update a user profile
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/users/{id} [put]
func (h *AdminUserHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	profile, err := h.profiles.FindByUserID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	profile.FullName = req.FullName
	profile.Phone = req.Phone
	profile.Role = domain.Role(req.Role)

	if err := h.profiles.Update(ctx, profile); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
