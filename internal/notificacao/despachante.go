package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/email"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

// Despachante é o lado consumidor: transforma cada evento da fila num e-mail.
type Despachante struct {
	DB      *gorm.DB
	Email   email.Enviador
	BaseURL string
}

// Processar trata uma mensagem do RabbitMQ. Usuário inexistente é descartado
// sem erro para a mensagem não voltar à fila.
func (d *Despachante) Processar(ctx context.Context, key string, body []byte) error {
	if key != RoutingCriada {
		log.Printf("[notificador] ignorando key=%s", key)
		return nil
	}
	var ev Evento
	if err := json.Unmarshal(body, &ev); err != nil {
		log.Printf("[notificador] payload inválido: %v", err)
		return nil
	}

	var u models.Usuario
	if err := d.DB.WithContext(ctx).First(&u, ev.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[notificador] usuário %d não existe, descartando notificação %d", ev.UserID, ev.ID)
			return nil
		}
		return fmt.Errorf("buscar usuário %d: %w", ev.UserID, err)
	}

	link := ""
	if ev.ActionURL != "" {
		link = d.BaseURL + ev.ActionURL
	}
	return d.Email.Enviar(u.Email, ev.Title+" - Toca Aqui", email.CorpoNotificacao(u.Nome, ev.Title, ev.Message, link))
}
