package models

import "time"

// Carrinho é o registro de um checkout finalizado. O rascunho em andamento
// não fica no banco.
type Carrinho struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ContratanteID uint           `gorm:"not null;index" json:"contratanteId"`
	EventoID      *uint          `gorm:"index" json:"eventoId,omitempty"`
	Subtotal      float64        `gorm:"not null;default:0" json:"subtotal"`
	Taxa          float64        `gorm:"not null;default:0" json:"taxa"`
	Total         float64        `gorm:"not null;default:0" json:"total"`
	CreatedAt     time.Time      `json:"createdAt"`
	Itens         []CarrinhoItem `gorm:"foreignKey:CarrinhoID;constraint:OnDelete:CASCADE" json:"itens"`
}

func (Carrinho) TableName() string { return "carrinhos" }

type CarrinhoItem struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	CarrinhoID     uint        `gorm:"not null;index" json:"carrinhoId"`
	ProfissionalID uint        `gorm:"not null;index" json:"profissionalId"`
	Tipo           TipoReserva `gorm:"size:10;not null" json:"tipo"`
	Horas          float64     `gorm:"not null;default:0" json:"horas"`
	Preco          float64     `gorm:"not null;default:0" json:"preco"`
}

func (CarrinhoItem) TableName() string { return "carrinho_itens" }

const PagamentoAprovado = "aprovado"

// Pagamento registra a conclusão simulada de um checkout. Não existe gateway:
// Simulado é sempre true.
type Pagamento struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CarrinhoID    uint      `gorm:"not null;uniqueIndex" json:"carrinhoId"`
	ContratanteID uint      `gorm:"not null;index" json:"contratanteId"`
	Subtotal      float64   `gorm:"not null" json:"subtotal"`
	Taxa          float64   `gorm:"not null" json:"taxa"`
	Total         float64   `gorm:"not null" json:"total"`
	Metodo        string    `gorm:"size:30" json:"metodo"`
	Status        string    `gorm:"size:20;not null;index" json:"status"`
	TransacaoID   string    `gorm:"size:36;uniqueIndex;not null" json:"transacaoId"`
	Simulado      bool      `gorm:"not null;default:true" json:"simulado"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Pagamento) TableName() string { return "pagamentos" }
