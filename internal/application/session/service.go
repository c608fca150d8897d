// Package session implementa el flujo de acceso a la consola (login, segundo factor y selección
// de centro de costos) sobre el almacenamiento clave-valor de cada sesión, y la compuerta que
// devuelve al usuario al paso que le falta.
package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/silogtran-api/internal/application/historial"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/repository"
	"github.com/jhoicas/silogtran-api/pkg/jwt"
	"github.com/jhoicas/silogtran-api/pkg/latency"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

// TwoFactorCodeLength longitud exacta del código de verificación.
const TwoFactorCodeLength = 6

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe = regexp.MustCompile(`^\d+$`)
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config credenciales simuladas, retardos y catálogo de centros de costos.
type Config struct {
	Username          string
	Password          string // se ignora si PasswordHash está definido
	PasswordHash      string
	RecoveryEmail     string
	LoginLatency      time.Duration
	TwoFactorLatency  time.Duration
	CostCenterLatency time.Duration
	RecoveryLatency   time.Duration
	ResendCooldown    time.Duration
	CostCenters       []entity.CostCenter
	JWT               JWTConfig
}

// LoginResult token emitido y siguiente vista del flujo.
type LoginResult struct {
	Token     string
	SessionID string
	Username  string
	Next      string
}

// ResendResult acuse del reenvío del código.
type ResendResult struct {
	Message    string
	RetryAfter time.Duration
}

// Service casos de uso del flujo de acceso.
type Service struct {
	kv        repository.KVStore
	historial *historial.Store
	cfg       Config
	hash      []byte
	log       *logger.Logger
	now       func() time.Time

	loginDelay      latency.Simulator
	twoFactorDelay  latency.Simulator
	costCenterDelay latency.Simulator
	recoveryDelay   latency.Simulator
}

// NewService construye el servicio. Si no se configura PasswordHash se deriva con bcrypt de Password.
func NewService(kv repository.KVStore, hist *historial.Store, cfg Config, log *logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("session: usuario de consola vacío")
	}
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("session: hash de contraseña: %w", err)
		}
		hash = h
	}
	return &Service{
		kv:              kv,
		historial:       hist,
		cfg:             cfg,
		hash:            hash,
		log:             log.Component("session"),
		now:             time.Now,
		loginDelay:      latency.New(cfg.LoginLatency),
		twoFactorDelay:  latency.New(cfg.TwoFactorLatency),
		costCenterDelay: latency.New(cfg.CostCenterLatency),
		recoveryDelay:   latency.New(cfg.RecoveryLatency),
	}, nil
}

// SetClock reemplaza el reloj (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Login valida las credenciales simuladas y abre la sesión en namespace (si viene vacío se crea
// uno nuevo). Borra cualquier verificación de segundo factor previa. El siguiente paso es two-factor-auth.
func (s *Service) Login(ctx context.Context, namespace, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, domain.NewValidationError("Por favor completa todos los campos")
	}
	if namespace == "" {
		namespace = uuid.New().String()
	}

	var out *LoginResult
	err := s.loginDelay.Do(ctx, func(ctx context.Context) error {
		if username != s.cfg.Username || bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
			return domain.ErrUnauthorized
		}
		if err := s.writeUser(ctx, namespace, username, ""); err != nil {
			return err
		}
		if err := s.kv.Remove(ctx, namespace, KeyTwoFactorVerified, KeyResendAt); err != nil {
			return fmt.Errorf("limpiar segundo factor: %w: %v", domain.ErrStorage, err)
		}
		token, err := jwt.Generate(s.cfg.JWT.Secret, namespace, username, s.cfg.JWT.Issuer, s.cfg.JWT.ExpMinutes)
		if err != nil {
			return fmt.Errorf("generar token: %w", err)
		}
		out = &LoginResult{Token: token, SessionID: namespace, Username: username, Next: entity.StepTwoFactorPending.RedirectView()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("namespace", namespace).Str("username", username).Msg("login correcto")
	return out, nil
}

// VerifyTwoFactor acepta cualquier código de exactamente 6 dígitos y marca el segundo factor.
func (s *Service) VerifyTwoFactor(ctx context.Context, namespace, code string) (string, error) {
	if _, err := s.Gate(ctx, namespace, entity.StepLoggedIn); err != nil {
		return "", err
	}
	code = strings.TrimSpace(code)
	if len(code) != TwoFactorCodeLength {
		return "", domain.NewValidationError("Por favor ingresa un código de 6 dígitos")
	}
	if !digitRe.MatchString(code) {
		return "", domain.NewValidationError("El código debe contener solo números")
	}
	err := s.twoFactorDelay.Do(ctx, func(ctx context.Context) error {
		if err := s.kv.Set(ctx, namespace, KeyTwoFactorVerified, "true"); err != nil {
			return fmt.Errorf("guardar segundo factor: %w: %v", domain.ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return entity.StepTwoFactorVerified.RedirectView(), nil
}

// ResendCode simula el reenvío del código respetando el tiempo de espera entre reenvíos.
// Dentro del tiempo de espera devuelve domain.ErrConflict y el tiempo restante.
func (s *Service) ResendCode(ctx context.Context, namespace string) (*ResendResult, error) {
	if _, err := s.Gate(ctx, namespace, entity.StepLoggedIn); err != nil {
		return nil, err
	}
	now := s.now()
	if raw, err := s.kv.Get(ctx, namespace, KeyResendAt); err == nil {
		if last, perr := time.Parse(time.RFC3339Nano, raw); perr == nil {
			if wait := last.Add(s.cfg.ResendCooldown).Sub(now); wait > 0 {
				return &ResendResult{RetryAfter: wait}, fmt.Errorf("reenvío en espera: %w", domain.ErrConflict)
			}
		}
	}
	if err := s.kv.Set(ctx, namespace, KeyResendAt, now.UTC().Format(time.RFC3339Nano)); err != nil {
		return nil, fmt.Errorf("guardar reenvío: %w: %v", domain.ErrStorage, err)
	}
	return &ResendResult{Message: "Código reenviado exitosamente", RetryAfter: s.cfg.ResendCooldown}, nil
}

// CostCenters centros de costos seleccionables.
func (s *Service) CostCenters() []entity.CostCenter {
	out := make([]entity.CostCenter, len(s.cfg.CostCenters))
	copy(out, s.cfg.CostCenters)
	return out
}

// SelectCostCenter guarda el centro de costos elegido (por código o nombre). Requiere el segundo factor.
func (s *Service) SelectCostCenter(ctx context.Context, namespace, selection string) (*entity.Session, error) {
	sess, err := s.Gate(ctx, namespace, entity.StepTwoFactorVerified)
	if err != nil {
		return nil, err
	}
	cc, ok := s.lookupCostCenter(strings.TrimSpace(selection))
	if !ok {
		return nil, domain.NewValidationError("Por favor selecciona un centro de costos")
	}
	err = s.costCenterDelay.Do(ctx, func(ctx context.Context) error {
		if err := s.kv.Set(ctx, namespace, KeyCostCenter, cc.Name); err != nil {
			return fmt.Errorf("guardar centro de costos: %w: %v", domain.ErrStorage, err)
		}
		return s.writeUser(ctx, namespace, sess.Username, cc.Code)
	})
	if err != nil {
		return nil, err
	}
	sess.CostCenter = cc.Name
	return sess, nil
}

// Logout borra las banderas de sesión y el historial del namespace.
func (s *Service) Logout(ctx context.Context, namespace string) error {
	var errs []error
	if err := s.kv.Remove(ctx, namespace, KeyUser, KeyTwoFactorVerified, KeyCostCenter, KeyResendAt, legacyKeyUserData); err != nil {
		errs = append(errs, fmt.Errorf("borrar sesión: %w: %v", domain.ErrStorage, err))
	}
	if s.historial != nil {
		if err := s.historial.Clear(ctx, namespace); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ForgotPassword valida usuario y correo y simula el envío de instrucciones de recuperación.
func (s *Service) ForgotPassword(ctx context.Context, username, email string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case username == "" || email == "":
		return "", domain.NewValidationError("Por favor completa todos los campos")
	case len([]rune(username)) < 3:
		return "", domain.NewValidationError("El usuario debe tener al menos 3 caracteres")
	case !emailRe.MatchString(email):
		return "", domain.NewValidationError("Por favor ingresa un correo electrónico válido")
	}
	err := s.recoveryDelay.Do(ctx, func(context.Context) error {
		if username != s.cfg.Username || email != strings.ToLower(s.cfg.RecoveryEmail) {
			return fmt.Errorf("usuario o correo electrónico no encontrado en el sistema: %w", domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return "Instrucciones enviadas correctamente", nil
}

func (s *Service) lookupCostCenter(selection string) (entity.CostCenter, bool) {
	if selection == "" {
		return entity.CostCenter{}, false
	}
	for _, cc := range s.cfg.CostCenters {
		if cc.Code == selection || strings.EqualFold(cc.Name, selection) {
			return cc, true
		}
	}
	return entity.CostCenter{}, false
}

// costCenterName nombre para un código; un código desconocido se conserva tal cual.
func (s *Service) costCenterName(code string) string {
	if cc, ok := s.lookupCostCenter(code); ok {
		return cc.Name
	}
	return code
}

func (s *Service) costCenterCode(name string) string {
	if cc, ok := s.lookupCostCenter(name); ok {
		return cc.Code
	}
	return ""
}
