package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

// Role represents an application's authorization role.
// Keep string form for easy persistence and token claims.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleGuest   Role = "guest"
)

// UserRecord is the application's view of an authenticated user, as returned
// by the social-login exchange and persisted alongside the bearer token.
type UserRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// Session pairs a bearer token with the user record it was issued for.
// The two travel together: a session must never exist with one present
// and the other absent.
type Session struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// Identity represents the authenticated principal returned by an identity
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject   string // stable provider identifier (e.g., the OIDC sub claim)
	GivenName string
	LastName  string
	Email     string
	Picture   string
}

// IsAuthenticated reports whether the session carries a non-empty token.
func (s Session) IsAuthenticated() bool { return s.Token != "" }

// IsGuest reports whether the session's user has no elevated role.
func (s Session) IsGuest() bool { return s.User.Role == "" || s.User.Role == RoleGuest }
