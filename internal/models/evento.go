package models

import (
	"time"

	"gorm.io/gorm"
)

type StatusEvento string

const (
	EventoAtivo     StatusEvento = "ativo"
	EventoCancelado StatusEvento = "cancelado"
	EventoConcluido StatusEvento = "concluido"
)

// Evento pertence a um contratante. ContratanteID não muda depois de criado.
type Evento struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
	ContratanteID      uint           `gorm:"not null;index" json:"contratanteId"`
	Titulo             string         `gorm:"size:200;not null" json:"titulo"`
	Descricao          string         `gorm:"type:text" json:"descricao"`
	Data               time.Time      `gorm:"not null;index" json:"data"`
	Local              string         `gorm:"size:255" json:"local"`
	Cidade             string         `gorm:"size:120" json:"cidade"`
	Estado             string         `gorm:"size:2" json:"estado"`
	ServicosRequeridos []string       `gorm:"type:jsonb;serializer:json" json:"servicosRequeridos"`
	Orcamento          *float64       `json:"orcamento,omitempty"`
	Status             StatusEvento   `gorm:"size:20;not null;default:'ativo';index" json:"status"`

	Candidaturas []Candidatura `gorm:"foreignKey:EventoID;constraint:OnDelete:CASCADE" json:"candidaturas,omitempty"`
}

func (Evento) TableName() string { return "eventos" }
