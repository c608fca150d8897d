package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
)

// Claves del almacenamiento de sesión.
const (
	KeyUser              = "user"
	KeyCostCenter        = "costCenter"
	KeyTwoFactorVerified = "twoFactorVerified"
	KeyResendAt          = "twoFactorResentAt"

	// legacyKeyUserData clave usada por pantallas antiguas ({name, costCenter}).
	legacyKeyUserData = "userData"
)

// storedUser forma canónica del valor bajo KeyUser.
type storedUser struct {
	Username   string `json:"username"`
	LoggedIn   bool   `json:"loggedIn"`
	CostCenter string `json:"costCenter,omitempty"`
}

// legacyUser cubre las formas antiguas: {username}, {username, loggedIn, costCenter} y {name, costCenter}.
type legacyUser struct {
	Username   string `json:"username"`
	Name       string `json:"name"`
	LoggedIn   *bool  `json:"loggedIn"`
	CostCenter string `json:"costCenter"`
}

// StepError el paso actual de la sesión no alcanza el requerido.
// errors.Is(err, domain.ErrSessionStep) es verdadero.
type StepError struct {
	Current  entity.Step
	Required entity.Step
}

func (e *StepError) Error() string {
	return fmt.Sprintf("sesión en paso %s, se requiere %s", e.Current, e.Required)
}

func (e *StepError) Unwrap() error { return domain.ErrSessionStep }

// Redirect vista a la que debe volver el usuario.
func (e *StepError) Redirect() string { return e.Current.RedirectView() }

// Current lee la sesión persistida del namespace. Devuelve nil si no hay usuario.
// Las formas antiguas del registro de usuario se migran a la canónica al leerlas.
// Un valor ilegible equivale a sesión cerrada y se registra como advertencia.
func (s *Service) Current(ctx context.Context, namespace string) *entity.Session {
	if namespace == "" {
		return nil
	}
	user, migrated, err := s.readUser(ctx, namespace)
	if err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("sesión ilegible, se trata como cerrada")
		return nil
	}
	if user == nil {
		return nil
	}

	sess := &entity.Session{Username: user.Username}

	cc, err := s.kv.Get(ctx, namespace, KeyCostCenter)
	switch {
	case err == nil:
		sess.CostCenter = cc
	case errors.Is(err, domain.ErrKeyNotFound):
		if user.CostCenter != "" {
			sess.CostCenter = s.costCenterName(user.CostCenter)
			migrated = true
		}
	default:
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("no se pudo leer el centro de costos")
	}

	v, err := s.kv.Get(ctx, namespace, KeyTwoFactorVerified)
	sess.TwoFactorVerified = err == nil && v == "true"

	if migrated {
		s.persistCanonical(ctx, namespace, sess)
	}
	return sess
}

// Step paso actual de la sesión del namespace.
func (s *Service) Step(ctx context.Context, namespace string) entity.Step {
	return s.Current(ctx, namespace).Step()
}

// Gate exige que la sesión haya alcanzado required. Si falta un paso previo devuelve un
// *StepError con la vista a la que redirigir.
func (s *Service) Gate(ctx context.Context, namespace string, required entity.Step) (*entity.Session, error) {
	sess := s.Current(ctx, namespace)
	if step := sess.Step(); step < required {
		return sess, &StepError{Current: step, Required: required}
	}
	return sess, nil
}

func (s *Service) readUser(ctx context.Context, namespace string) (*storedUser, bool, error) {
	raw, err := s.kv.Get(ctx, namespace, KeyUser)
	migrated := false
	if errors.Is(err, domain.ErrKeyNotFound) {
		raw, err = s.kv.Get(ctx, namespace, legacyKeyUserData)
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, false, nil
		}
		migrated = true
	}
	if err != nil {
		return nil, false, fmt.Errorf("leer usuario: %w", err)
	}

	var lu legacyUser
	if err := json.Unmarshal([]byte(raw), &lu); err != nil {
		return nil, false, fmt.Errorf("parsear usuario: %w: %v", domain.ErrStorage, err)
	}
	username := strings.TrimSpace(lu.Username)
	if username == "" {
		username = strings.TrimSpace(lu.Name)
		migrated = migrated || username != ""
	}
	if username == "" {
		return nil, false, nil
	}
	if lu.LoggedIn != nil && !*lu.LoggedIn {
		return nil, false, nil
	}
	if lu.LoggedIn == nil {
		migrated = true
	}
	return &storedUser{Username: username, LoggedIn: true, CostCenter: lu.CostCenter}, migrated, nil
}

// persistCanonical reescribe la sesión en la forma canónica y elimina la clave antigua.
func (s *Service) persistCanonical(ctx context.Context, namespace string, sess *entity.Session) {
	if err := s.writeUser(ctx, namespace, sess.Username, s.costCenterCode(sess.CostCenter)); err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("no se pudo migrar la sesión")
		return
	}
	if sess.CostCenter != "" {
		if err := s.kv.Set(ctx, namespace, KeyCostCenter, sess.CostCenter); err != nil {
			s.log.Warn().Err(err).Str("namespace", namespace).Msg("no se pudo migrar el centro de costos")
		}
	}
	if err := s.kv.Remove(ctx, namespace, legacyKeyUserData); err != nil {
		s.log.Warn().Err(err).Str("namespace", namespace).Msg("no se pudo borrar la clave antigua")
	}
	s.log.Info().Str("namespace", namespace).Msg("sesión migrada a la forma canónica")
}

func (s *Service) writeUser(ctx context.Context, namespace, username, costCenterCode string) error {
	raw, err := json.Marshal(storedUser{Username: username, LoggedIn: true, CostCenter: costCenterCode})
	if err != nil {
		return fmt.Errorf("serializar usuario: %w: %v", domain.ErrStorage, err)
	}
	if err := s.kv.Set(ctx, namespace, KeyUser, string(raw)); err != nil {
		return fmt.Errorf("guardar usuario: %w: %v", domain.ErrStorage, err)
	}
	return nil
}
