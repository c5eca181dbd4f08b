package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

// ContentHandler serves the public content endpoints and the admin
// editing surface behind them.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

type pageRequest struct {
	Title   string `json:"title" validate:"required"`
	Slug    string `json:"slug" validate:"required"`
	Icon    string `json:"icon"`
	Type    string `json:"type" validate:"required,oneof=static webview youtube_video youtube_channel data_table"`
	Order   int    `json:"order"`
	Active  bool   `json:"active"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

type sliderRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ImageBase64 string `json:"image_base64"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
	TargetType  string `json:"target_type" validate:"omitempty,oneof=none page url"`
	TargetSlug  string `json:"target_page_slug"`
	TargetURL   string `json:"target_url"`
}

type settingsRequest struct {
	AppName        string `json:"app_name" validate:"required"`
	OrgName        string `json:"org_name"`
	HeaderText     string `json:"header_text"`
	FooterText     string `json:"footer_text"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

func (r *pageRequest) toInput() ports.PageInput {
	return ports.PageInput{
		Title:   r.Title,
		Slug:    r.Slug,
		Icon:    r.Icon,
		Type:    domain.PageType(r.Type),
		Order:   r.Order,
		Active:  r.Active,
		Content: r.Content,
		URL:     r.URL,
	}
}

func (r *sliderRequest) toInput() ports.SliderInput {
	return ports.SliderInput{
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		ImageBase64: r.ImageBase64,
		Order:       r.Order,
		Active:      r.Active,
		TargetType:  domain.SliderTarget(r.TargetType),
		TargetSlug:  r.TargetSlug,
		TargetURL:   r.TargetURL,
	}
}

// --- Public reads ---

// PublicPages returns active pages ordered for display.
//
// @Summary      List active pages
// @Tags         content
// @Produce      json
// @Success      200  {array}  domain.Page
// @Router       /v1/content/pages [get]
func (h *ContentHandler) PublicPages(c echo.Context) error {
	pages, err := h.service.ListPages(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pages)
}

// PublicPageBySlug returns one page by its slug.
//
// @Summary      Get a page by slug
// @Tags         content
// @Produce      json
// @Param        slug  path      string  true  "Page slug"
// @Success      200   {object}  domain.Page
// @Failure      404   {object}  map[string]string
// @Router       /v1/content/pages/{slug} [get]
func (h *ContentHandler) PublicPageBySlug(c echo.Context) error {
	page, err := h.service.GetPageBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// PublicSliders returns active sliders ordered for display.
//
// @Summary      List active sliders
// @Tags         content
// @Produce      json
// @Success      200  {array}  domain.Slider
// @Router       /v1/content/sliders [get]
func (h *ContentHandler) PublicSliders(c echo.Context) error {
	sliders, err := h.service.ListSliders(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sliders)
}

// PublicSettings returns the app branding settings. Defaults are served
// when nothing has been saved yet.
//
// @Summary      Get app settings
// @Tags         content
// @Produce      json
// @Success      200  {object}  domain.AppSettings
// @Router       /v1/content/settings [get]
func (h *ContentHandler) PublicSettings(c echo.Context) error {
	settings, err := h.service.GetSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// --- Admin surface ---

// AdminPages returns all pages including inactive ones.
//
// @Summary      List all pages (admin)
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Page
// @Router       /v1/admin/content/pages [get]
func (h *ContentHandler) AdminPages(c echo.Context) error {
	pages, err := h.service.ListPages(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pages)
}

// CreatePage adds a content page.
//
// @Summary      Create a page
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pageRequest  true  "Page details"
// @Success      201   {object}  domain.Page
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/content/pages [post]
func (h *ContentHandler) CreatePage(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.CreatePage(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, page)
}

// UpdatePage edits a content page.
//
// @Summary      Update a page
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Page id"
// @Param        body  body      pageRequest  true  "Page details"
// @Success      200   {object}  domain.Page
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/admin/content/pages/{id} [put]
func (h *ContentHandler) UpdatePage(c echo.Context) error {
	var req pageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.service.UpdatePage(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// DeletePage removes a content page.
//
// @Summary      Delete a page
// @Tags         content
// @Security     BearerAuth
// @Param        id  path  string  true  "Page id"
// @Success      204 "deleted"
// @Failure      404 {object}  map[string]string
// @Router       /v1/admin/content/pages/{id} [delete]
func (h *ContentHandler) DeletePage(c echo.Context) error {
	if err := h.service.DeletePage(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AdminSliders returns all sliders including inactive ones.
//
// @Summary      List all sliders (admin)
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Slider
// @Router       /v1/admin/content/sliders [get]
func (h *ContentHandler) AdminSliders(c echo.Context) error {
	sliders, err := h.service.ListSliders(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sliders)
}

// CreateSlider adds a home slider.
//
// @Summary      Create a slider
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sliderRequest  true  "Slider details"
// @Success      201   {object}  domain.Slider
// @Router       /v1/admin/content/sliders [post]
func (h *ContentHandler) CreateSlider(c echo.Context) error {
	var req sliderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slider, err := h.service.CreateSlider(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, slider)
}

// UpdateSlider edits a home slider.
//
// @Summary      Update a slider
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Slider id"
// @Param        body  body      sliderRequest  true  "Slider details"
// @Success      200   {object}  domain.Slider
// @Failure      404   {object}  map[string]string
// @Router       /v1/admin/content/sliders/{id} [put]
func (h *ContentHandler) UpdateSlider(c echo.Context) error {
	var req sliderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slider, err := h.service.UpdateSlider(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slider)
}

// DeleteSlider removes a home slider.
//
// @Summary      Delete a slider
// @Tags         content
// @Security     BearerAuth
// @Param        id  path  string  true  "Slider id"
// @Success      204 "deleted"
// @Failure      404 {object}  map[string]string
// @Router       /v1/admin/content/sliders/{id} [delete]
func (h *ContentHandler) DeleteSlider(c echo.Context) error {
	if err := h.service.DeleteSlider(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateSettings saves the app branding.
//
// @Summary      Update app settings
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingsRequest  true  "Settings"
// @Success      200   {object}  domain.AppSettings
// @Router       /v1/admin/content/settings [put]
func (h *ContentHandler) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.service.UpdateSettings(c.Request().Context(), &domain.AppSettings{
		AppName:        req.AppName,
		OrgName:        req.OrgName,
		HeaderText:     req.HeaderText,
		FooterText:     req.FooterText,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
