package entity

// UserLoginData is the identity the token middleware extracts; the ledger only uses ID.
type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
