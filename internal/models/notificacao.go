package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tipos de notificação gerados pelos fluxos da plataforma.
const (
	NotifNovaCandidatura      = "nova_candidatura"
	NotifCandidaturaCancelada = "candidatura_cancelada"
	NotifCandidaturaAceita    = "candidatura_aceita"
	NotifCandidaturaRejeitada = "candidatura_rejeitada"
	NotifEventoCancelado      = "evento_cancelado"
	NotifNovaReserva          = "nova_reserva"
	NotifReservaCancelada     = "reserva_cancelada"
	NotifNovaAvaliacao        = "nova_avaliacao"
)

// Notificacao só muda de estado pela marcação de lida/não lida.
type Notificacao struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"userId"`
	Type      string         `gorm:"size:50;not null" json:"type"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	Read      bool           `gorm:"not null;default:false;index" json:"read"`
	ActionURL *string        `gorm:"size:255" json:"actionUrl,omitempty"`
	Data      datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Notificacao) TableName() string { return "notifications" }
