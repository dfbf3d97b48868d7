package dto

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryWithUsageResponse struct {
	CategoryResponse
	TotalProjects int64 `json:"total_projects"`
}
