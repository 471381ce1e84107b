package domain

// Session is the result of a successful login: a signed session token plus
// the reconciled user it was minted for. The token is never persisted.
type Session struct {
	Token string
	User  User
}
