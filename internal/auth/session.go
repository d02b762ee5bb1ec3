// Package auth covers the identity boundary: the session contract supplied
// by the identity provider, signed session tokens, and syncing a signed-in
// identity to its internal user record.
package auth

// Session is what the identity provider supplies for the current visitor.
// IsLoaded distinguishes "not checked yet" from "checked and signed out".
type Session struct {
	IsSignedIn bool
	IsLoaded   bool
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	ImageURL   string
}

// Anonymous is the resolved state of a visitor with no session.
var Anonymous = Session{IsLoaded: true}
