package domain

// User holds the identity and contact profile of an account.
// ID is assigned by the server and never changes.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar,omitempty"`
}

// AuthSession is what the server hands back on a successful login or
// registration: the bearer token plus the authenticated user.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterData carries the fields of a registration request.
type RegisterData struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Avatar          string `json:"avatar,omitempty"`
}

// UpdateProfileData carries the editable profile fields. The client always
// sends the full set; partial-update semantics are the server's business.
type UpdateProfileData struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar,omitempty"`
}

// UpdatePasswordData carries a password change request.
type UpdatePasswordData struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
