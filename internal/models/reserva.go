package models

import "time"

type StatusReserva string

const (
	ReservaPendente   StatusReserva = "pendente"
	ReservaConfirmada StatusReserva = "confirmada"
	ReservaCancelada  StatusReserva = "cancelada"
	ReservaConcluida  StatusReserva = "concluida"
)

// TipoReserva define como o cachê é cobrado.
type TipoReserva string

const (
	TipoPorEvento TipoReserva = "evento"
	TipoPorHora   TipoReserva = "hora"
)

func (t TipoReserva) Valido() bool {
	return t == TipoPorEvento || t == TipoPorHora
}

// Reserva é a contratação confirmada, separada da candidatura que a originou.
type Reserva struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	ProfissionalID uint          `gorm:"not null;index" json:"profissionalId"`
	ContratanteID  uint          `gorm:"not null;index" json:"contratanteId"`
	EventoID       *uint         `gorm:"index" json:"eventoId,omitempty"`
	CandidaturaID  *uint         `gorm:"uniqueIndex" json:"candidaturaId,omitempty"`
	PagamentoID    *uint         `gorm:"index" json:"pagamentoId,omitempty"`
	Tipo           TipoReserva   `gorm:"size:10;not null;default:'evento'" json:"tipo"`
	Horas          float64       `gorm:"not null;default:0" json:"horas"`
	Valor          float64       `gorm:"not null;default:0" json:"valor"`
	Status         StatusReserva `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`

	Profissional *Profissional `gorm:"foreignKey:ProfissionalID" json:"profissional,omitempty"`
	Evento       *Evento       `gorm:"foreignKey:EventoID" json:"evento,omitempty"`
}

func (Reserva) TableName() string { return "reservas" }
