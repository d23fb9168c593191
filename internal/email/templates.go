package email

import (
	"fmt"
	"html"
)

// CorpoRedefinicao monta o e-mail com o link de redefinição de senha.
func CorpoRedefinicao(nome, link string) string {
	return fmt.Sprintf(`
		<p>Olá, %s!</p>
		<p>Recebemos um pedido para redefinir a sua senha no Toca Aqui.</p>
		<p><a href="%s">Clique aqui para escolher uma nova senha</a>. O link vale por 1 hora.</p>
		<p>Se não foi você, ignore esta mensagem.</p>
	`, html.EscapeString(nome), html.EscapeString(link))
}

// CorpoNotificacao monta o e-mail de uma notificação da plataforma.
func CorpoNotificacao(nome, titulo, mensagem, link string) string {
	corpo := fmt.Sprintf(`
		<p>Olá, %s!</p>
		<p><strong>%s</strong></p>
		<p>%s</p>
	`, html.EscapeString(nome), html.EscapeString(titulo), html.EscapeString(mensagem))
	if link != "" {
		corpo += fmt.Sprintf(`<p><a href="%s">Ver no Toca Aqui</a></p>`, html.EscapeString(link))
	}
	return corpo
}
