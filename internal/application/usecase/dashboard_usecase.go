package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/historial"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/pkg/logger"
)

// DashboardUseCase arma la pantalla de inicio: bienvenida, historial y notificaciones.
type DashboardUseCase struct {
	store *historial.Store
	log   *logger.Logger
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso. now nil usa time.Now.
func NewDashboardUseCase(store *historial.Store, log *logger.Logger, now func() time.Time) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{store: store, log: log.Component("dashboard"), now: now}
}

// Get devuelve los datos del dashboard. La primera vez siembra el historial con actividad de
// ejemplo; si la siembra falla se muestra el historial tal como esté.
func (uc *DashboardUseCase) Get(ctx context.Context, namespace string, sess *entity.Session) *dto.DashboardResponse {
	now := uc.now()
	items, err := uc.store.Seed(ctx, namespace, historial.DefaultEntries(now))
	if err != nil {
		uc.log.Warn().Err(err).Str("namespace", namespace).Msg("no se pudo sembrar el historial")
		items = uc.store.List(ctx, namespace)
	}

	notifications := sampleNotifications(now)
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return &dto.DashboardResponse{
		Username:       sess.Username,
		Initial:        sess.Initial(),
		CostCenter:     sess.CostCenter,
		WelcomeMessage: "¡Bienvenido, " + sess.Username + "!",
		Historial:      toHistorialDTOs(items),
		Notifications:  notifications,
		UnreadCount:    unread,
	}
}

// sampleNotifications avisos simulados del panel de notificaciones.
func sampleNotifications(now time.Time) []dto.NotificationDTO {
	return []dto.NotificationDTO{
		{ID: 1, Title: "Remesa actualizada", Message: "Se actualizó la Remesa 001234", Type: "info", CreatedAt: now.Add(-5 * time.Minute)},
		{ID: 2, Title: "Manifiesto creado", Message: "Se creó el manifiesto 005678", Type: "success", CreatedAt: now.Add(-time.Hour)},
		{ID: 3, Title: "Manifiesto confirmado", Message: "Se confirmó el Manifiesto 009012", Type: "success", CreatedAt: now.Add(-3 * time.Hour)},
		{ID: 4, Title: "Documentos pendientes", Message: "Se debe actualizar los documentos soportes 003456", Type: "warning", CreatedAt: now.Add(-24 * time.Hour)},
	}
}
