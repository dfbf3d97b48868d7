package contextkeys

type ContextKey string

const (
	// DBContextKey is where middleware stores the *gorm.DB handle (the shared
	// pool, or an already-open transaction in tests).
	DBContextKey ContextKey = "db"

	// AdminIDContextKey is where the auth middleware stores the authenticated
	// admin's id.
	AdminIDContextKey ContextKey = "adminID"
)
