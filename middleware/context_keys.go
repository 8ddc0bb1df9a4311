package middleware

// Context keys used within the application middleware and handlers.
const (
	// PrincipalKey is the context key for the authenticated *types.Principal.
	PrincipalKey = "principal"
	// UserIDKey is the context key for the authenticated user's ID (string).
	UserIDKey = "user_id"
	// ScopeKey is the context key for the resolved types.ScopeDescriptor.
	ScopeKey = "visibility_scope"
	// RequestIDKey is the context key for the request ID.
	RequestIDKey = "request_id"
)
