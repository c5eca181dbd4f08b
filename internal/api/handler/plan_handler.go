package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/ports"
)

type PlanHandler struct {
	service ports.PlanService
}

func NewPlanHandler(service ports.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

type planRequest struct {
	Name         string `json:"name" validate:"required"`
	SpeedMbps    int    `json:"speed_mbps" validate:"gt=0"`
	PriceMonthly int64  `json:"price_monthly" validate:"gt=0"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
}

// Create adds a service package.
//
// @Summary      Create a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      planRequest  true  "Plan details"
// @Success      201   {object}  domain.Plan
// @Failure      400   {object}  map[string]string
// @Router       /v1/plans [post]
func (h *PlanHandler) Create(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.service.Create(c.Request().Context(), ports.PlanInput{
		Name:         req.Name,
		SpeedMbps:    req.SpeedMbps,
		PriceMonthly: req.PriceMonthly,
		Description:  req.Description,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, plan)
}

// List returns plans ordered by speed. active=true limits to active plans.
//
// @Summary      List plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        active  query    string  false  "Only active plans when true"
// @Success      200     {array}  domain.Plan
// @Router       /v1/plans [get]
func (h *PlanHandler) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"

	plans, err := h.service.List(c.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plans)
}

// Get returns one plan.
//
// @Summary      Get a plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Plan id"
// @Success      200 {object}  domain.Plan
// @Failure      404 {object}  map[string]string
// @Router       /v1/plans/{id} [get]
func (h *PlanHandler) Get(c echo.Context) error {
	plan, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Update replaces a plan's fields.
//
// @Summary      Update a plan
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Plan id"
// @Param        body  body      planRequest  true  "Plan details"
// @Success      200   {object}  domain.Plan
// @Failure      404   {object}  map[string]string
// @Router       /v1/plans/{id} [put]
func (h *PlanHandler) Update(c echo.Context) error {
	var req planRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.PlanInput{
		Name:         req.Name,
		SpeedMbps:    req.SpeedMbps,
		PriceMonthly: req.PriceMonthly,
		Description:  req.Description,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// Delete removes a plan.
//
// @Summary      Delete a plan
// @Tags         plans
// @Security     BearerAuth
// @Param        id  path  string  true  "Plan id"
// @Success      204 "deleted"
// @Failure      404 {object}  map[string]string
// @Router       /v1/plans/{id} [delete]
func (h *PlanHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
