package contextkeys

// Custom type to avoid key collisions with other packages.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is stored.
const DBContextKey = contextKey("db")
