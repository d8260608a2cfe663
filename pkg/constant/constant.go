package constant

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "admin_session"

	// HeaderXForwardedFor is consulted before the socket address when
	// resolving the client IP behind a proxy.
	HeaderXForwardedFor = "X-Forwarded-For"
)
