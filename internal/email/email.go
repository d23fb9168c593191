// Package email envia mensagens por SMTP.
package email

import (
	"log"

	"gopkg.in/gomail.v2"
)

// Enviador é o que os fluxos de senha e de notificação precisam.
type Enviador interface {
	Enviar(para, assunto, corpoHTML string) error
}

// SMTP envia via gomail.
type SMTP struct {
	Host    string
	Porta   int
	Usuario string
	Senha   string
}

func NovoSMTP(host string, porta int, usuario, senha string) *SMTP {
	return &SMTP{Host: host, Porta: porta, Usuario: usuario, Senha: senha}
}

func (s *SMTP) Enviar(para, assunto, corpoHTML string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.Usuario)
	m.SetHeader("To", para)
	m.SetHeader("Subject", assunto)
	m.SetBody("text/html", corpoHTML)

	d := gomail.NewDialer(s.Host, s.Porta, s.Usuario, s.Senha)
	return d.DialAndSend(m)
}

// Log só registra a mensagem; usado quando o SMTP não está configurado.
type Log struct{}

func (Log) Enviar(para, assunto, _ string) error {
	log.Printf("[email] SMTP não configurado, mensagem para %s descartada: %s", para, assunto)
	return nil
}

// Novo escolhe o SMTP quando há host configurado.
func Novo(host string, porta int, usuario, senha string) Enviador {
	if host == "" {
		return Log{}
	}
	return NovoSMTP(host, porta, usuario, senha)
}
