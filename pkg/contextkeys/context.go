package contextkeys

// Custom type so our keys cannot collide with other packages' context values.
type contextKey string

// IdentityContextKey holds the authenticated identity set by the auth middleware.
const IdentityContextKey = contextKey("identity")
