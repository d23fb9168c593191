package notificacao

import (
	"encoding/json"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/datatypes"
)

// RoutingCriada é a routing key publicada a cada notificação inserida.
const RoutingCriada = "notificacao.criada"

// Evento é o payload publicado no RabbitMQ e no webhook.
type Evento struct {
	ID        uint           `json:"id"`
	UserID    uint           `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	ActionURL string         `json:"actionUrl,omitempty"`
	Data      datatypes.JSON `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NovoEvento(n *models.Notificacao) Evento {
	ev := Evento{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		CreatedAt: n.CreatedAt,
	}
	if n.ActionURL != nil {
		ev.ActionURL = *n.ActionURL
	}
	return ev
}

// Nova monta uma notificação não lida. actionURL vazio fica nulo.
func Nova(userID uint, tipo, titulo, mensagem, actionURL string, dados map[string]any) *models.Notificacao {
	n := &models.Notificacao{
		UserID:  userID,
		Type:    tipo,
		Title:   titulo,
		Message: mensagem,
	}
	if actionURL != "" {
		n.ActionURL = &actionURL
	}
	if len(dados) > 0 {
		if b, err := json.Marshal(dados); err == nil {
			n.Data = datatypes.JSON(b)
		}
	}
	return n
}
