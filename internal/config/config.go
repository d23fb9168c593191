package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config reúne tudo que a API e o notificador leem do ambiente.
type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`

	// Banco
	DBHost            string `envconfig:"DB_HOST" default:"localhost"`
	DBPort            uint   `envconfig:"DB_PORT" default:"5432"`
	DBName            string `envconfig:"DB_NAME" default:"tocaaqui"`
	DBUsername        string `envconfig:"DB_USERNAME"`
	DBPassword        string `envconfig:"DB_PASSWORD"`
	DBSecretID        string `envconfig:"DB_SECRET_ID"`
	DBSSLModeDisable  bool   `envconfig:"DB_SSL_MODE_DISABLE" default:"true"`
	DBLogLevel        string `envconfig:"DB_LOG_LEVEL" default:"error"`
	DBMaxOpenConns    int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns    int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime int    `envconfig:"DB_CONN_MAX_LIFETIME_MIN" default:"30"`

	// Auth
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTTL    time.Duration `envconfig:"JWT_ACCESS_TTL" default:"15m"`
	RefreshTTL   time.Duration `envconfig:"JWT_REFRESH_TTL" default:"720h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
	ResetURL     string        `envconfig:"RESET_URL" default:"http://localhost:3000/redefinir-senha"`

	// Redis (preferência de papel e rascunho do carrinho). Vazio usa memória.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// RabbitMQ. Vazio desliga a publicação de eventos.
	RabbitURL      string `envconfig:"RABBIT_URL"`
	RabbitExchange string `envconfig:"RABBIT_EXCHANGE" default:"tocaaqui.eventos"`
	RabbitQueue    string `envconfig:"RABBIT_QUEUE" default:"tocaaqui.notificador"`

	// Cloudinary
	CloudinaryCloudName    string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey       string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret    string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadPreset string `envconfig:"CLOUDINARY_UPLOAD_PRESET"`

	// SMTP
	SMTPHost  string `envconfig:"SMTP_HOST"`
	SMTPPort  int    `envconfig:"SMTP_PORT" default:"587"`
	EmailUser string `envconfig:"EMAIL_USER"`
	EmailPass string `envconfig:"EMAIL_PASS"`

	WebhookURL string `envconfig:"WEBHOOK_URL"`
	AppURL     string `envconfig:"APP_URL" default:"http://localhost:3000"`

	// Limite local de candidaturas por usuário
	LimiteCandidaturas int           `envconfig:"LIMITE_CANDIDATURAS" default:"5"`
	JanelaCandidaturas time.Duration `envconfig:"JANELA_CANDIDATURAS" default:"1m"`
}

// Load carrega o .env (se existir) e preenche Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: .env não encontrado, usando variáveis de ambiente diretamente.")
	}
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// Origens devolve a lista de origens CORS sem espaços nem barras finais.
func (c Config) Origens() []string {
	var out []string
	for _, p := range strings.Split(c.CORSOrigins, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}
