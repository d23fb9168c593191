package models

import "time"

// TipoVideoYoutube é o tipo de item que conta para o limite de vídeos.
const TipoVideoYoutube = "Vídeo YouTube"

type ItemPortfolio struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProfissionalID uint      `gorm:"not null;index" json:"profissionalId"`
	Tipo           string    `gorm:"size:60;not null" json:"tipo"`
	URL            string    `gorm:"size:500;not null" json:"url"`
	Descricao      string    `gorm:"type:text" json:"descricao"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (ItemPortfolio) TableName() string { return "portfolio" }
