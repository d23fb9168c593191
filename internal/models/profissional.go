package models

import "time"

// Profissional é o perfil público de quem presta serviço (músico, DJ, fotógrafo...).
// Cada usuário tem no máximo um perfil.
type Profissional struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex" json:"userId"`
	NomeArtistico    string    `gorm:"size:150;not null" json:"nomeArtistico"`
	TipoProfissional string    `gorm:"size:80;not null;index" json:"tipoProfissional"`
	Instrumentos     []string  `gorm:"type:jsonb;serializer:json" json:"instrumentos"`
	Servicos         []string  `gorm:"type:jsonb;serializer:json" json:"servicos"`
	Subgeneros       []string  `gorm:"type:jsonb;serializer:json" json:"subgeneros"`
	Bio              string    `gorm:"type:text" json:"bio"`
	Cidade           string    `gorm:"size:120;index" json:"cidade"`
	Estado           string    `gorm:"size:2" json:"estado"`
	CacheHora        *float64  `json:"cacheHora"`
	CacheEvento      *float64  `json:"cacheEvento"`
	InstagramURL     string    `gorm:"size:255" json:"instagramUrl"`
	YoutubeURL       string    `gorm:"size:255" json:"youtubeUrl"`
	SpotifyURL       string    `gorm:"size:255" json:"spotifyUrl"`
	ImagemURL        string    `gorm:"size:255" json:"imagemUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	Portfolio []ItemPortfolio `gorm:"foreignKey:ProfissionalID;constraint:OnDelete:CASCADE" json:"portfolio,omitempty"`
}

func (Profissional) TableName() string { return "profissionais" }

// CacheReferencia é o valor usado para comparar faixas de preço: o cachê por
// evento e, na falta dele, o por hora.
func (p Profissional) CacheReferencia() (float64, bool) {
	if p.CacheEvento != nil {
		return *p.CacheEvento, true
	}
	if p.CacheHora != nil {
		return *p.CacheHora, true
	}
	return 0, false
}
