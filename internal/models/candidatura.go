package models

import "time"

type StatusCandidatura string

const (
	CandidaturaPendente  StatusCandidatura = "pendente"
	CandidaturaAceita    StatusCandidatura = "aceita"
	CandidaturaRejeitada StatusCandidatura = "rejeitada"
	CandidaturaCancelada StatusCandidatura = "cancelada"
)

// Candidatura liga um profissional a um evento. O par (profissional, evento)
// é único no banco.
type Candidatura struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	ProfissionalID uint              `gorm:"not null;uniqueIndex:idx_candidatura_prof_evento" json:"profissionalId"`
	EventoID       uint              `gorm:"not null;uniqueIndex:idx_candidatura_prof_evento;index" json:"eventoId"`
	Status         StatusCandidatura `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	Mensagem       string            `gorm:"type:text" json:"mensagem"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	Profissional *Profissional `gorm:"foreignKey:ProfissionalID" json:"profissional,omitempty"`
	Evento       *Evento       `gorm:"foreignKey:EventoID" json:"evento,omitempty"`
}

func (Candidatura) TableName() string { return "candidaturas" }
