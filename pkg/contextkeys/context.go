package contextkeys

// Custom type so request-context values cannot collide with other packages.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle travels through
// the request context.
const DBContextKey = contextKey("db")
