package domain

// Session is the logged-in user as returned by the API under "user".
type Session struct {
	Email string `json:"email"`
	Token string `json:"token"`
}
