// O notificador consome os eventos de notificação do RabbitMQ e envia o
// e-mail correspondente a cada usuário.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/config"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/email"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/mq"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/utils/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Erro ao carregar configuração:", err)
	}
	if cfg.RabbitURL == "" {
		log.Fatal("RABBIT_URL é obrigatório para o notificador")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.Conectar(ctx, cfg)
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	d := &notificacao.Despachante{
		DB:      database,
		Email:   email.Novo(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass),
		BaseURL: cfg.AppURL,
	}
	conectar := func() (consumidor, error) {
		return mq.NewConsumer(cfg.RabbitURL, cfg.RabbitExchange, cfg.RabbitQueue, []string{"notificacao.*"}, 16)
	}
	log.Printf("[notificador] iniciado. fila=%s exchange=%s", cfg.RabbitQueue, cfg.RabbitExchange)
	executar(ctx, conectar, d.Processar, esperaReconexao)
	log.Println("[notificador] encerrado")
}

const esperaReconexao = 2 * time.Second

type consumidor interface {
	Consumir(ctx context.Context, fn mq.Processador) error
	Close() error
}

// executar conecta e consome até o ctx terminar, reconectando após falhas
// de conexão ou queda do canal.
func executar(ctx context.Context, conectar func() (consumidor, error), fn mq.Processador, espera time.Duration) {
	for ctx.Err() == nil {
		cons, err := conectar()
		if err != nil {
			log.Printf("[notificador] conexão falhou: %v; nova tentativa em %s", err, espera)
		} else {
			err = cons.Consumir(ctx, fn)
			_ = cons.Close()
			if err == nil {
				return
			}
			log.Printf("[notificador] consumo interrompido: %v; reconectando em %s", err, espera)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(espera):
		}
	}
}
