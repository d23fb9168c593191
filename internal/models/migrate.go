package models

import "gorm.io/gorm"

// AutoMigrate cria ou atualiza todas as tabelas da plataforma.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Usuario{},
		&Profissional{},
		&ItemPortfolio{},
		&Evento{},
		&Candidatura{},
		&Carrinho{},
		&CarrinhoItem{},
		&Pagamento{},
		&Reserva{},
		&Avaliacao{},
		&Notificacao{},
		&RefreshToken{},
		&RedefinicaoSenha{},
	)
}
