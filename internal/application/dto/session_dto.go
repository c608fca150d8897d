package dto

// LoginRequest entrada para login con las credenciales de la consola.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y siguiente vista del flujo.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Next     string `json:"next"`
}

// TwoFactorRequest código de verificación de 6 dígitos.
type TwoFactorRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// NextStepResponse siguiente vista tras completar un paso.
type NextStepResponse struct {
	Next string `json:"next"`
}

// ResendResponse acuse del reenvío del código.
type ResendResponse struct {
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

// ForgotPasswordRequest entrada de recuperación de contraseña.
type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
}

// CostCenterRequest centro de costos elegido (código o nombre).
type CostCenterRequest struct {
	CostCenter string `json:"cost_center" validate:"required"`
}

// CostCenterDTO centro de costos seleccionable.
type CostCenterDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SessionResponse estado de la sesión actual.
type SessionResponse struct {
	Username          string `json:"username,omitempty"`
	Initial           string `json:"initial,omitempty"`
	CostCenter        string `json:"cost_center,omitempty"`
	TwoFactorVerified bool   `json:"two_factor_verified"`
	Step              string `json:"step"`
	Redirect          string `json:"redirect"`
}
