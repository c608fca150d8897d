package dto

import "time"

// DashboardResponse respuesta de GET /api/dashboard: datos de bienvenida, historial y avisos.
type DashboardResponse struct {
	Username       string              `json:"username"`
	Initial        string              `json:"initial"`
	CostCenter     string              `json:"cost_center"`
	WelcomeMessage string              `json:"welcome_message"`
	Historial      []HistorialEntryDTO `json:"historial"`
	Notifications  []NotificationDTO   `json:"notifications"`
	UnreadCount    int                 `json:"unread_count"`
}

// NotificationDTO aviso del panel de notificaciones.
type NotificationDTO struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"` // info, success, warning
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
