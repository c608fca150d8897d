package entity

import "unicode"

// Step paso del flujo de acceso a la consola.
type Step int

const (
	StepLoggedOut Step = iota
	StepLoggedIn
	StepTwoFactorPending
	StepTwoFactorVerified
	StepCostCenterSelected
)

// String nombre estable del paso.
func (s Step) String() string {
	switch s {
	case StepLoggedOut:
		return "logged_out"
	case StepLoggedIn:
		return "logged_in"
	case StepTwoFactorPending:
		return "two_factor_pending"
	case StepTwoFactorVerified:
		return "two_factor_verified"
	case StepCostCenterSelected:
		return "cost_center_selected"
	default:
		return "unknown"
	}
}

// RedirectView vista a la que se debe enviar al usuario para completar el siguiente paso.
func (s Step) RedirectView() string {
	switch s {
	case StepLoggedOut:
		return "login"
	case StepLoggedIn, StepTwoFactorPending:
		return "two-factor-auth"
	case StepTwoFactorVerified:
		return "cost-center"
	default:
		return "dashboard"
	}
}

// Session estado de sesión persistido en el almacenamiento del cliente.
type Session struct {
	Username          string
	CostCenter        string
	TwoFactorVerified bool
}

// Step deriva el paso actual a partir de las banderas persistidas.
func (s *Session) Step() Step {
	switch {
	case s == nil || s.Username == "":
		return StepLoggedOut
	case !s.TwoFactorVerified:
		return StepTwoFactorPending
	case s.CostCenter == "":
		return StepTwoFactorVerified
	default:
		return StepCostCenterSelected
	}
}

// Initial primera letra del usuario en mayúscula (avatar).
func (s *Session) Initial() string {
	for _, r := range s.Username {
		return string(unicode.ToUpper(r))
	}
	return ""
}

// CostCenter centro de costos seleccionable.
type CostCenter struct {
	Code string
	Name string
}
