package domain

// Principal is the authenticated view of an Account. It is rebuilt on every
// request server-side and cached next to the token client-side; it never
// carries credentials.
type Principal struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// PrincipalFromAccount projects an account onto its authorization view.
func PrincipalFromAccount(a *Account) *Principal {
	return &Principal{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
	}
}
