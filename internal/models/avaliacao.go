package models

import "time"

type Avaliacao struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProfissionalID uint      `gorm:"not null;index" json:"profissionalId"`
	ContratanteID  uint      `gorm:"not null;index" json:"contratanteId"`
	ReservaID      uint      `gorm:"not null;uniqueIndex" json:"reservaId"`
	Nota           int       `gorm:"not null" json:"nota"`
	Comentario     string    `gorm:"type:text" json:"comentario"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Avaliacao) TableName() string { return "avaliacoes" }
