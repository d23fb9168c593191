// Package testutil monta dependências compartilhadas pelos testes.
package testutil

import (
	"testing"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NovoBanco abre um SQLite em memória com todas as tabelas migradas.
// Uma única conexão mantém o mesmo banco durante o teste inteiro.
func NovoBanco(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// CriarUsuario insere um usuário com os campos mínimos.
func CriarUsuario(t *testing.T, db *gorm.DB, email string, tipo models.Papel) *models.Usuario {
	t.Helper()
	u := &models.Usuario{Email: email, Nome: email, TipoInicial: tipo, Senha: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("criar usuario: %v", err)
	}
	return u
}

// CriarProfissional insere um usuário e o seu perfil profissional.
func CriarProfissional(t *testing.T, db *gorm.DB, email string, p models.Profissional) *models.Profissional {
	t.Helper()
	u := CriarUsuario(t, db, email, models.PapelProfissional)
	p.UserID = u.ID
	if p.NomeArtistico == "" {
		p.NomeArtistico = email
	}
	if p.TipoProfissional == "" {
		p.TipoProfissional = "Músico"
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("criar profissional: %v", err)
	}
	if err := db.Model(u).Update("tem_perfil_profissional", true).Error; err != nil {
		t.Fatalf("marcar perfil: %v", err)
	}
	return &p
}
