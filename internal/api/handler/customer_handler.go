package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	PlanID  string `json:"plan_id" validate:"required"`
	SalesID string `json:"sales_id"`
	DueDay  int    `json:"due_day" validate:"gte=1,lte=28"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	PlanID  *string `json:"plan_id"`
	DueDay  *int    `json:"due_day"`
	Status  *string `json:"status"`
}

// Create registers a new subscriber.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.service.Create(c.Request().Context(), scope, ports.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		PlanID:  req.PlanID,
		SalesID: req.SalesID,
		DueDay:  req.DueDay,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

// Get returns one subscriber. Sales callers only reach their own.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Customer id"
// @Success      200 {object}  domain.Customer
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// List returns subscribers visible to the caller.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Match against name or phone"
// @Success      200     {array}   domain.Customer
// @Router       /v1/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	customers, err := h.service.List(c.Request().Context(), scope, c.QueryParam("search"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Update patches subscriber fields. Status changes require admin rank.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Customer id"
// @Param        body  body      updateCustomerRequest  true  "Fields to change"
// @Success      200   {object}  domain.Customer
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		PlanID:  req.PlanID,
		DueDay:  req.DueDay,
	}
	if req.Status != nil {
		status := domain.CustomerStatus(*req.Status)
		input.Status = &status
	}

	customer, err := h.service.Update(c.Request().Context(), scope, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete removes a subscriber.
//
// @Summary      Delete a customer
// @Tags         customers
// @Security     BearerAuth
// @Param        id  path  string  true  "Customer id"
// @Success      204 "deleted"
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), scope, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Count returns the number of subscribers visible to the caller.
//
// @Summary      Count customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64
// @Router       /v1/customers/count [get]
func (h *CustomerHandler) Count(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	count, err := h.service.Count(c.Request().Context(), scope)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}
