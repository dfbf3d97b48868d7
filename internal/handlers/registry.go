package handlers

// AppHandlers bundles every resource handler for route registration.
type AppHandlers struct {
	Auth      *AuthHandler
	Category  *CategoryHandler
	Portfolio *PortfolioHandler
	Contact   *ContactHandler
}
