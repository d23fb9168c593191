package models

import "time"

type RefreshToken struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"index"`
	FamilyID  string     `gorm:"index"`
	Hash      string     `gorm:"uniqueIndex"`
	ExpiresAt time.Time  `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// RedefinicaoSenha guarda o hash do token enviado por e-mail; o token em si
// nunca é persistido.
type RedefinicaoSenha struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	UsadoEm   *time.Time
	CreatedAt time.Time
}

func (RedefinicaoSenha) TableName() string { return "redefinicoes_senha" }
