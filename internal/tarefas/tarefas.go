// Package tarefas agenda as rotinas periódicas da API.
package tarefas

import (
	"context"
	"log"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/ratelimit"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	AgendaConcluirEventos = "@every 15m"
	AgendaLimpeza         = "@hourly"
	prazoExecucao         = 2 * time.Minute
)

// Concluidor fecha eventos com data vencida.
type Concluidor interface {
	ConcluirPassados(ctx context.Context) (eventos int64, reservas int64, err error)
}

// LimpadorTokens apaga refresh tokens e tokens de redefinição vencidos.
type LimpadorTokens interface {
	LimparExpirados(ctx context.Context, db *gorm.DB, agora time.Time) (int64, error)
}

type Tarefas struct {
	DB        *gorm.DB
	Eventos   Concluidor
	Tokens    LimpadorTokens
	Limitador *ratelimit.Limitador

	now func() time.Time
}

func Novas(db *gorm.DB, eventos Concluidor, tokens LimpadorTokens, lim *ratelimit.Limitador) *Tarefas {
	return &Tarefas{DB: db, Eventos: eventos, Tokens: tokens, Limitador: lim, now: time.Now}
}

// Iniciar registra as rotinas e liga o agendador. Quem chama deve parar o
// cron no desligamento.
func (t *Tarefas) Iniciar() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(AgendaConcluirEventos, func() { t.ConcluirEventos(context.Background()) }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(AgendaLimpeza, func() { t.Limpar(context.Background()) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Println("Agendador de tarefas iniciado")
	return c, nil
}

// ConcluirEventos marca como concluídos os eventos ativos que já passaram.
func (t *Tarefas) ConcluirEventos(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, prazoExecucao)
	defer cancel()
	eventos, reservas, err := t.Eventos.ConcluirPassados(ctx)
	if err != nil {
		log.Printf("erro ao concluir eventos passados: %v", err)
		return
	}
	if eventos > 0 {
		log.Printf("%d eventos concluídos, %d reservas concluídas", eventos, reservas)
	}
}

// Limpar apaga tokens vencidos e janelas antigas do limitador.
func (t *Tarefas) Limpar(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, prazoExecucao)
	defer cancel()
	agora := t.now()
	if t.Tokens != nil {
		n, err := t.Tokens.LimparExpirados(ctx, t.DB, agora)
		if err != nil {
			log.Printf("erro ao limpar tokens expirados: %v", err)
		} else if n > 0 {
			log.Printf("%d tokens expirados removidos", n)
		}
	}
	if t.Limitador != nil {
		t.Limitador.Limpar(agora)
	}
}
