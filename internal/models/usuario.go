package models

import "time"

// Papel identifica qual das duas visões o usuário está usando.
type Papel string

const (
	PapelContratante  Papel = "contratante"
	PapelProfissional Papel = "profissional"
)

// Valido indica se o papel é um dos dois conhecidos.
func (p Papel) Valido() bool {
	return p == PapelContratante || p == PapelProfissional
}

// Usuario é a identidade de quem acessa a plataforma, contratante ou profissional.
type Usuario struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Email                 string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nome                  string    `gorm:"size:150;not null" json:"nome"`
	Telefone              string    `gorm:"size:30" json:"telefone"`
	TipoInicial           Papel     `gorm:"size:20;not null;default:'contratante'" json:"tipoInicial"`
	TemPerfilProfissional bool      `gorm:"not null;default:false" json:"temPerfilProfissional"`
	PapelAtual            *Papel    `gorm:"size:20" json:"papelAtual,omitempty"`
	Senha                 string    `gorm:"size:255;not null" json:"-"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (Usuario) TableName() string { return "users" }
