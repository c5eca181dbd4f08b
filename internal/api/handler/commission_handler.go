package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/ports"
)

type CommissionHandler struct {
	service ports.CommissionService
}

func NewCommissionHandler(service ports.CommissionService) *CommissionHandler {
	return &CommissionHandler{service: service}
}

type commissionSettingRequest struct {
	CustomerID string  `json:"customer_id" validate:"required"`
	SalesID    string  `json:"sales_id" validate:"required"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

type commissionTotalResponse struct {
	Total int64 `json:"total"`
}

// List returns accrued commissions, scoped to the caller.
//
// @Summary      List commissions
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        month  query    int  false  "Billing month (1-12)"
// @Param        year   query    int  false  "Billing year"
// @Success      200    {array}  domain.Commission
// @Router       /v1/commissions [get]
func (h *CommissionHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))

	commissions, err := h.service.List(c.Request().Context(), scope, month, year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commissions)
}

// Total returns the summed commission amount for a period.
//
// @Summary      Total commissions
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Billing month (1-12)"
// @Param        year   query     int  false  "Billing year"
// @Success      200    {object}  commissionTotalResponse
// @Router       /v1/commissions/total [get]
func (h *CommissionHandler) Total(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))

	total, err := h.service.Total(c.Request().Context(), scope, month, year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commissionTotalResponse{Total: total})
}

// MarkPaid settles one accrued commission.
//
// @Summary      Mark a commission paid
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Commission id"
// @Success      200 {object}  domain.Commission
// @Failure      404 {object}  map[string]string
// @Router       /v1/commissions/{id}/pay [post]
func (h *CommissionHandler) MarkPaid(c echo.Context) error {
	commission, err := h.service.MarkPaid(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commission)
}

// SetSetting creates or updates the percentage for a customer.
//
// @Summary      Set a commission percentage
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      commissionSettingRequest  true  "Setting"
// @Success      200   {object}  domain.CommissionSetting
// @Failure      400   {object}  map[string]string
// @Router       /v1/commissions/settings [put]
func (h *CommissionHandler) SetSetting(c echo.Context) error {
	var req commissionSettingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	setting, err := h.service.SetPercentage(c.Request().Context(), req.CustomerID, req.SalesID, req.Percentage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, setting)
}

// ListSettings returns all commission settings.
//
// @Summary      List commission settings
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CommissionSetting
// @Router       /v1/commissions/settings [get]
func (h *CommissionHandler) ListSettings(c echo.Context) error {
	settings, err := h.service.ListSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// DeleteSetting removes a commission setting.
//
// @Summary      Delete a commission setting
// @Tags         commissions
// @Security     BearerAuth
// @Param        id  path  string  true  "Setting id"
// @Success      204 "deleted"
// @Failure      404 {object}  map[string]string
// @Router       /v1/commissions/settings/{id} [delete]
func (h *CommissionHandler) DeleteSetting(c echo.Context) error {
	if err := h.service.DeleteSetting(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
