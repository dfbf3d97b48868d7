package models

type Category struct {
	BaseModel
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string { return "portfolio_main_categories" }

// CategoryWithUsage carries the number of portfolios linked to a category,
// as returned by the totals listing.
type CategoryWithUsage struct {
	Category
	TotalProjects int64 `json:"total_projects"`
}
