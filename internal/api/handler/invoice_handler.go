package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type generateInvoicesRequest struct {
	Month int `json:"month" validate:"gte=1,lte=12"`
	Year  int `json:"year" validate:"gte=2020"`
}

type generateInvoicesResponse struct {
	Created int `json:"created"`
}

type markPaidRequest struct {
	PaymentDate string `json:"payment_date"`
	ProofURL    string `json:"proof_url"`
}

// Generate creates pending invoices for all active customers for a period.
//
// @Summary      Generate monthly invoices
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateInvoicesRequest  true  "Billing period"
// @Success      200   {object}  generateInvoicesResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/invoices/generate [post]
func (h *InvoiceHandler) Generate(c echo.Context) error {
	var req generateInvoicesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.GenerateMonthly(c.Request().Context(), req.Month, req.Year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, generateInvoicesResponse{Created: created})
}

// List returns invoices for a billing period, scoped to the caller.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        month   query    int     false  "Billing month (1-12)"
// @Param        year    query    int     false  "Billing year"
// @Param        status  query    string  false  "pending | paid | verified"
// @Success      200     {array}  domain.Invoice
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	month, _ := strconv.Atoi(c.QueryParam("month"))
	year, _ := strconv.Atoi(c.QueryParam("year"))

	invoices, err := h.service.List(c.Request().Context(), scope, ports.InvoiceFilter{
		Month:  month,
		Year:   year,
		Status: domain.InvoiceStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoices)
}

// Get returns one invoice.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Invoice id"
// @Success      200 {object}  domain.Invoice
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	invoice, err := h.service.Get(c.Request().Context(), scope, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// MarkPaid records a customer payment report against a pending invoice.
//
// @Summary      Mark an invoice paid
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Invoice id"
// @Param        body  body      markPaidRequest  true  "Payment details"
// @Success      200   {object}  domain.Invoice
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	scope, err := ctxScope(c)
	if err != nil {
		return err
	}

	var req markPaidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var paymentDate time.Time
	if req.PaymentDate != "" {
		var err error
		paymentDate, err = time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		}
	}

	invoice, err := h.service.MarkPaid(c.Request().Context(), scope, c.Param("id"), ports.MarkPaidInput{
		PaymentDate: paymentDate,
		ProofURL:    req.ProofURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// Verify confirms a reported payment and schedules commission accrual.
//
// @Summary      Verify a paid invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Invoice id"
// @Success      200 {object}  domain.Invoice
// @Failure      404 {object}  map[string]string
// @Failure      422 {object}  map[string]string
// @Router       /v1/invoices/{id}/verify [post]
func (h *InvoiceHandler) Verify(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	invoice, err := h.service.Verify(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// Revert moves a paid invoice back to pending.
//
// @Summary      Revert a paid invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Invoice id"
// @Success      200 {object}  domain.Invoice
// @Failure      404 {object}  map[string]string
// @Failure      422 {object}  map[string]string
// @Router       /v1/invoices/{id}/revert [post]
func (h *InvoiceHandler) Revert(c echo.Context) error {
	invoice, err := h.service.Revert(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}
