package domain

import "time"

// PageType selects how a content page is rendered by the app.
type PageType string

const (
	PageStatic         PageType = "static"
	PageWebView        PageType = "webview"
	PageYouTubeVideo   PageType = "youtube_video"
	PageYouTubeChannel PageType = "youtube_channel"
	PageDataTable      PageType = "data_table"
)

// ValidPageType reports whether t is a known page type.
func ValidPageType(t PageType) bool {
	switch t {
	case PageStatic, PageWebView, PageYouTubeVideo, PageYouTubeChannel, PageDataTable:
		return true
	}
	return false
}

// Page is a content page addressed by slug. Public listings only include
// active pages, ordered by Order ascending.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon,omitempty"`
	Type      PageType  `json:"type"`
	Order     int       `json:"order"`
	Active    bool      `json:"active"`
	Content   string    `json:"content,omitempty"` // rich text for static pages
	URL       string    `json:"url,omitempty"`     // webview / youtube targets
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SliderTarget is the action taken when a home slider is tapped.
type SliderTarget string

const (
	SliderTargetNone SliderTarget = "none"
	SliderTargetPage SliderTarget = "page"
	SliderTargetURL  SliderTarget = "url"
)

// Slider is one home-screen carousel item.
type Slider struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Icon        string       `json:"icon,omitempty"`
	ImageBase64 string       `json:"image_base64,omitempty"`
	Order       int          `json:"order"`
	Active      bool         `json:"active"`
	TargetType  SliderTarget `json:"target_type"`
	TargetSlug  string       `json:"target_page_slug,omitempty"`
	TargetURL   string       `json:"target_url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// AppSettings is the singleton branding document for the content app.
type AppSettings struct {
	AppName        string     `json:"app_name"`
	OrgName        string     `json:"org_name"`
	HeaderText     string     `json:"header_text,omitempty"`
	FooterText     string     `json:"footer_text,omitempty"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}
