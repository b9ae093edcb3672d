package models

type RegisterRequest struct {
	Username          string `json:"username" validate:"required,alphanum,min=3,max=150"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Role              string `json:"role" validate:"required,signup_role"`
	VendorName        string `json:"vendor_name" validate:"required_if=Role vendor"`
	VendorDescription string `json:"vendor_description"`
	Website           string `json:"website" validate:"omitempty,url"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	Email             string  `json:"email" validate:"required,email"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	VendorName        *string `json:"vendor_name" validate:"omitempty,min=1"`
	VendorDescription *string `json:"vendor_description"`
	Website           *string `json:"website" validate:"omitempty,url"`
}

type ProfileResponse struct {
	User    User       `json:"user"`
	Profile Profile    `json:"profile"`
	Vendor  *Vendor    `json:"vendor,omitempty"`
	Stats   *UserStats `json:"stats,omitempty"`
}

type UserStats struct {
	Bookings int64 `json:"bookings"`
	Reviews  int64 `json:"reviews"`
}

type DashboardResponse struct {
	Role     Role   `json:"role"`
	Redirect string `json:"redirect"`
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
