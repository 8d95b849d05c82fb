package models

// User is the authenticated account as reported by the exam API.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Credentials are forwarded verbatim to the exam API at login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the bearer token the exam API issued plus the account.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
