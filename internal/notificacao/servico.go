package notificacao

import (
	"context"
	"log"
	"sync"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

// Publicador é o lado do RabbitMQ que o serviço usa.
type Publicador interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Servico grava notificações e as repassa para fila e webhook quando
// configurados. Falhas no repasse só vão para o log.
type Servico struct {
	Repository Repository
	Publicador Publicador
	Webhook    *Webhook

	envios sync.WaitGroup
}

func NovoServico(pub Publicador, wh *Webhook) *Servico {
	return &Servico{Repository: NewRepository(), Publicador: pub, Webhook: wh}
}

// Notificar insere a notificação. Chame fora de transações: o repasse
// acontece logo após o insert.
func (s *Servico) Notificar(ctx context.Context, db *gorm.DB, n *models.Notificacao) error {
	if err := s.Repository.Criar(ctx, db, n); err != nil {
		return err
	}
	s.repassar(ctx, n)
	return nil
}

// NotificarVarias insere em sequência e registra as falhas sem abortar.
func (s *Servico) NotificarVarias(ctx context.Context, db *gorm.DB, ns []*models.Notificacao) {
	for _, n := range ns {
		if err := s.Notificar(ctx, db, n); err != nil {
			log.Printf("erro ao notificar usuário %d (%s): %v", n.UserID, n.Type, err)
		}
	}
}

func (s *Servico) repassar(ctx context.Context, n *models.Notificacao) {
	if s.Publicador != nil {
		if err := s.Publicador.PublishJSON(ctx, RoutingCriada, NovoEvento(n)); err != nil {
			log.Printf("erro ao publicar notificação %d: %v", n.ID, err)
		}
	}
	if s.Webhook != nil && s.Webhook.URL != "" {
		// O webhook roda fora da requisição e sobrevive ao cancelamento dela.
		ctx := context.WithoutCancel(ctx)
		s.envios.Add(1)
		go func() {
			defer s.envios.Done()
			if err := s.Webhook.Enviar(ctx, n); err != nil {
				log.Printf("erro ao enviar webhook da notificação %d: %v", n.ID, err)
			}
		}()
	}
}

// Aguardar bloqueia até os webhooks em andamento terminarem.
func (s *Servico) Aguardar() {
	s.envios.Wait()
}
