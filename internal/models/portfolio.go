package models

// Portfolio is the aggregate root. Its categories, descriptions and images
// live in child tables keyed by portfolio_id and are always written through
// one transaction.
type Portfolio struct {
	BaseModel
	Title         string  `gorm:"not null" json:"title"`
	Slug          string  `gorm:"uniqueIndex;not null" json:"slug"`
	ProjectType   string  `gorm:"not null" json:"project_type"`
	PublisherName string  `gorm:"not null" json:"publisher_name"`
	ProjectLink   *string `json:"project_link"`
}

func (Portfolio) TableName() string { return "portfolio" }

// PortfolioCategory links a portfolio to a category. No payload; at most one
// row per (portfolio, category) pair.
type PortfolioCategory struct {
	PortfolioID uint `gorm:"primaryKey;autoIncrement:false" json:"portfolio_id"`
	CategoryID  uint `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
}

func (PortfolioCategory) TableName() string { return "portfolio_categories" }

// PortfolioDescription holds one ordered paragraph. DisplayOrder is 1-based
// and contiguous; the whole list is replaced on update, never patched.
type PortfolioDescription struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PortfolioID  uint   `gorm:"not null;index" json:"portfolio_id"`
	Description  string `gorm:"type:text;not null" json:"description"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

func (PortfolioDescription) TableName() string { return "portfolio_descriptions" }

// PortfolioImage is one slot of a portfolio's ordered image sequence.
// Exactly one row per portfolio has IsHeader set, and that row sits at
// DisplayOrder 0. FileID is the remote-storage handle needed to delete the
// asset; legacy rows may lack it, in which case the remote file is leaked
// when the row goes away.
type PortfolioImage struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PortfolioID  uint    `gorm:"not null;index" json:"portfolio_id"`
	ImageURL     string  `gorm:"not null" json:"image_url"`
	FileID       *string `json:"file_id,omitempty"`
	DisplayOrder int     `gorm:"not null" json:"display_order"`
	AltText      string  `json:"alt_text"`
	IsHeader     bool    `gorm:"not null;default:false" json:"is_header"`
}

func (PortfolioImage) TableName() string { return "portfolio_images" }
