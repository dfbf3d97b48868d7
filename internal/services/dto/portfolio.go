package dto

import "time"

// ImageSlot is one entry of the client-submitted image plan: the desired
// final sequence of images for a portfolio. A slot either keeps an existing
// image by URL (IsNew false) or introduces new content by pointing at an
// index into the uploaded file payloads (IsNew true).
type ImageSlot struct {
	URL       string `json:"image_url"`
	IsNew     bool   `json:"isNew"`
	FileIndex int    `json:"file_index"`
	AltText   string `json:"alt_text"`
}

type CreatePortfolioRequest struct {
	Title         string      `json:"title" validate:"required,min=1,max=255"`
	Slug          string      `json:"slug" validate:"required,min=1,max=255"`
	ProjectType   string      `json:"project_type" validate:"required,max=100"`
	PublisherName string      `json:"publisher_name" validate:"required,max=255"`
	ProjectLink   *string     `json:"project_link" validate:"omitempty,url"`
	CategorySlugs []string    `json:"tech_category"`
	Descriptions  []string    `json:"descriptions"`
	ImagePlan     []ImageSlot `json:"images_meta" validate:"required,min=1"`
}

// UpdatePortfolioRequest carries partial-update semantics: nil pointers and
// nil slices mean "leave as is". A non-nil empty slice replaces with empty.
type UpdatePortfolioRequest struct {
	Title         *string     `json:"title" validate:"omitempty,min=1,max=255"`
	Slug          *string     `json:"slug" validate:"omitempty,min=1,max=255"`
	ProjectType   *string     `json:"project_type" validate:"omitempty,max=100"`
	PublisherName *string     `json:"publisher_name" validate:"omitempty,max=255"`
	ProjectLink   *string     `json:"project_link" validate:"omitempty,url"`
	CategorySlugs []string    `json:"tech_category"`
	Descriptions  []string    `json:"descriptions"`
	ImagePlan     []ImageSlot `json:"images_meta"`
}

type PortfolioImageResponse struct {
	ID           uint   `json:"id"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
	AltText      string `json:"alt_text"`
	IsHeader     bool   `json:"is_header"`
}

// PortfolioAggregate is the full read shape: the portfolio row plus its
// categories, descriptions and images.
type PortfolioAggregate struct {
	ID            uint                     `json:"id"`
	Title         string                   `json:"title"`
	Slug          string                   `json:"slug"`
	ProjectType   string                   `json:"project_type"`
	PublisherName string                   `json:"publisher_name"`
	ProjectLink   *string                  `json:"project_link,omitempty"`
	Categories    []CategoryResponse       `json:"tech_category"`
	Descriptions  []string                 `json:"descriptions"`
	Images        []PortfolioImageResponse `json:"images"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// PortfolioSummary is the lightweight shape for carousel and "next" links.
type PortfolioSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	ProjectType    string `json:"project_type"`
	HeaderImageURL string `json:"header_image_url,omitempty"`
}
