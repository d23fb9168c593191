package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/armazenamento"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/avaliacao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/candidatura"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/carrinho"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/config"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/email"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/evento"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/mq"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/portfolio"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/profissional"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/ratelimit"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/reserva"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/sessao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/tarefas"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/usuario"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

const tempoDesligamento = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Erro ao carregar configuração:", err)
	}

	ctx := context.Background()
	database, err := db.Conectar(ctx, cfg)
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}
	if err := models.AutoMigrate(database); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Redis é opcional: sem ele a preferência de papel vai para o banco e o
	// rascunho do carrinho fica em memória.
	var prefs sessao.PreferenciaStore = &sessao.BancoPreferencias{DB: database}
	var rascunhos carrinho.RascunhoStore = carrinho.NovaMemoriaRascunhos()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Aviso: Redis indisponível (%v), usando banco/memória", err)
		} else {
			defer rdb.Close()
			prefs = &sessao.RedisPreferencias{Client: rdb}
			rascunhos = &carrinho.RedisRascunhos{Client: rdb}
			log.Println("Conectado ao Redis em", cfg.RedisAddr)
		}
	}

	var pub notificacao.Publicador
	if cfg.RabbitURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Printf("Aviso: RabbitMQ indisponível (%v), notificações só no banco", err)
		} else {
			defer p.Close()
			pub = p
		}
	}
	var wh *notificacao.Webhook
	if cfg.WebhookURL != "" {
		wh = notificacao.NovoWebhook(cfg.WebhookURL)
	}
	notificacoes := notificacao.NovoServico(pub, wh)

	var arm armazenamento.Armazenamento
	if cfg.CloudinaryCloudName != "" {
		c, err := armazenamento.NovoCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadPreset)
		if err != nil {
			log.Printf("Aviso: Cloudinary não configurado (%v)", err)
		} else {
			arm = c
		}
	}

	emissor := auth.NovoEmissor(cfg.JWTSecret, cfg.AccessTTL)
	limitador := ratelimit.Novo(cfg.LimiteCandidaturas, cfg.JanelaCandidaturas)

	authHandler := auth.NewHandler(database, emissor, email.Novo(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass), cfg.RefreshTTL)
	authHandler.CookieSecure = cfg.CookieSecure
	authHandler.ResetURL = cfg.ResetURL

	eventos := evento.NovoServico(database, notificacoes)
	avaliacoes := avaliacao.NovoServico(database, notificacoes)

	r := novoRouter(database, emissor, limitador, handlers{
		auth:         authHandler,
		sessao:       sessao.NewHandler(database, sessao.NovoServico(prefs)),
		usuario:      usuario.NewHandler(database),
		profissional: profissional.NewHandler(database, arm, avaliacoes),
		portfolio:    portfolio.NewHandler(database),
		evento:       evento.NewHandler(eventos),
		candidatura:  candidatura.NewHandler(candidatura.NovoServico(database, notificacoes)),
		reserva:      reserva.NewHandler(reserva.NovoServico(database, notificacoes)),
		avaliacao:    avaliacao.NewHandler(avaliacoes),
		carrinho:     carrinho.NewHandler(carrinho.NovoServico(database, rascunhos, notificacoes)),
		notificacao:  notificacao.NewHandler(database),
	})

	agendador, err := tarefas.Novas(database, eventos, auth.NewRepository(), limitador).Iniciar()
	if err != nil {
		log.Fatal("Erro ao agendar tarefas:", err)
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.Origens(),
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Println("Servidor rodando em", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Erro no servidor HTTP:", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("Desligando...")

	<-agendador.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), tempoDesligamento)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Erro ao desligar servidor: %v", err)
	}
	notificacoes.Aguardar()
}

type handlers struct {
	auth         *auth.Handler
	sessao       *sessao.Handler
	usuario      *usuario.Handler
	profissional *profissional.Handler
	portfolio    *portfolio.Handler
	evento       *evento.Handler
	candidatura  *candidatura.Handler
	reserva      *reserva.Handler
	avaliacao    *avaliacao.Handler
	carrinho     *carrinho.Handler
	notificacao  *notificacao.Handler
}

func novoRouter(database *gorm.DB, emissor *auth.Emissor, limitador *ratelimit.Limitador, h handlers) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		sqlDB, err := database.DB()
		if err != nil || sqlDB.PingContext(req.Context()) != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	// Rotas públicas
	r.HandleFunc("/auth/cadastro", h.auth.Cadastro).Methods("POST")
	r.HandleFunc("/auth/login", h.auth.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", h.auth.Refresh).Methods("POST")
	r.HandleFunc("/auth/logout", h.auth.Logout).Methods("POST")
	r.HandleFunc("/auth/esqueci-senha", h.auth.EsqueciSenha).Methods("POST")
	r.HandleFunc("/auth/redefinir-senha", h.auth.RedefinirSenha).Methods("POST")
	r.HandleFunc("/profissionais", h.profissional.Catalogo).Methods("GET")
	r.HandleFunc("/eventos", h.evento.Listar).Methods("GET")
	r.HandleFunc("/profissionais/{id:[0-9]+}", h.profissional.Buscar).Methods("GET")
	r.HandleFunc("/profissionais/{id:[0-9]+}/imagem", h.profissional.Imagem).Methods("GET")
	r.HandleFunc("/profissionais/{id:[0-9]+}/avaliacoes", h.avaliacao.DoProfissional).Methods("GET")
	r.HandleFunc("/profissionais/{id:[0-9]+}/portfolio", h.portfolio.Listar).Methods("GET")
	r.HandleFunc("/profissionais/{id:[0-9]+}/portfolio/limite", h.portfolio.Limite).Methods("GET")
	r.HandleFunc("/eventos/{id:[0-9]+}", h.evento.Buscar).Methods("GET")

	// Rotas protegidas
	api := r.NewRoute().Subrouter()
	api.Use(emissor.Middleware)

	api.HandleFunc("/auth/me", h.auth.Me).Methods("GET")
	api.HandleFunc("/auth/sessao", h.auth.Sessao).Methods("GET")
	api.HandleFunc("/sessao", h.sessao.Obter).Methods("GET")
	api.HandleFunc("/sessao/papel", h.sessao.DefinirPapel).Methods("PUT")
	api.HandleFunc("/usuarios/me", h.usuario.Obter).Methods("GET")
	api.HandleFunc("/usuarios/me", h.usuario.Atualizar).Methods("PUT")

	// Profissionais
	api.HandleFunc("/profissionais/me", h.profissional.Meu).Methods("GET")
	api.HandleFunc("/profissionais/me", h.profissional.Salvar).Methods("PUT")
	api.HandleFunc("/profissionais/me", h.profissional.Remover).Methods("DELETE")
	api.HandleFunc("/profissionais/me/imagem", h.profissional.EnviarImagem).Methods("POST")

	// Portfólio
	api.HandleFunc("/profissionais/me/portfolio", h.portfolio.Criar).Methods("POST")
	api.HandleFunc("/portfolio/{id}", h.portfolio.Atualizar).Methods("PUT")
	api.HandleFunc("/portfolio/{id}", h.portfolio.Remover).Methods("DELETE")

	// Eventos
	api.HandleFunc("/eventos", h.evento.Criar).Methods("POST")
	api.HandleFunc("/eventos/meus", h.evento.Meus).Methods("GET")
	api.HandleFunc("/eventos/{id:[0-9]+}", h.evento.Atualizar).Methods("PUT")
	api.HandleFunc("/eventos/{id:[0-9]+}", h.evento.Remover).Methods("DELETE")
	api.HandleFunc("/eventos/{id:[0-9]+}/cancelar", h.evento.Cancelar).Methods("POST")

	// Candidaturas
	api.Handle("/eventos/{id:[0-9]+}/candidaturas",
		limitador.Middleware("candidatura")(http.HandlerFunc(h.candidatura.Submeter))).Methods("POST")
	api.HandleFunc("/eventos/{id:[0-9]+}/candidaturas", h.candidatura.ListarPorEvento).Methods("GET")
	api.HandleFunc("/candidaturas/minhas", h.candidatura.ListarMinhas).Methods("GET")
	api.HandleFunc("/candidaturas/{id}/cancelar", h.candidatura.Cancelar).Methods("POST")
	api.HandleFunc("/candidaturas/{id}/aceitar", h.candidatura.Aceitar).Methods("POST")
	api.HandleFunc("/candidaturas/{id}/rejeitar", h.candidatura.Rejeitar).Methods("POST")

	// Reservas e avaliações
	api.HandleFunc("/reservas", h.reserva.Listar).Methods("GET")
	api.HandleFunc("/reservas/{id}/cancelar", h.reserva.Cancelar).Methods("POST")
	api.HandleFunc("/reservas/{id}/concluir", h.reserva.Concluir).Methods("POST")
	api.HandleFunc("/reservas/{id}/avaliacao", h.avaliacao.Avaliar).Methods("POST")

	// Carrinho
	api.HandleFunc("/carrinho", h.carrinho.Obter).Methods("GET")
	api.HandleFunc("/carrinho/itens", h.carrinho.Adicionar).Methods("POST")
	api.HandleFunc("/carrinho/itens/{profissionalId}", h.carrinho.Remover).Methods("DELETE")
	api.HandleFunc("/carrinho", h.carrinho.Limpar).Methods("DELETE")
	api.HandleFunc("/carrinho/checkout", h.carrinho.Finalizar).Methods("POST")
	api.HandleFunc("/pagamentos", h.carrinho.Pagamentos).Methods("GET")

	// Notificações
	api.HandleFunc("/notificacoes", h.notificacao.Listar).Methods("GET")
	api.HandleFunc("/notificacoes/nao-lidas/total", h.notificacao.ContarNaoLidas).Methods("GET")
	api.HandleFunc("/notificacoes/lidas", h.notificacao.MarcarTodasLidas).Methods("POST")
	api.HandleFunc("/notificacoes/{id}/lida", h.notificacao.MarcarLida).Methods("PATCH")
	api.HandleFunc("/notificacoes/{id}/nao-lida", h.notificacao.MarcarNaoLida).Methods("PATCH")
	api.HandleFunc("/notificacoes/{id}", h.notificacao.Remover).Methods("DELETE")

	return r
}
