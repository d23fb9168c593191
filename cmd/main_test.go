package main

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/ratelimit"
	"github.com/gorilla/mux"
)

func routerDeTeste() *mux.Router {
	return novoRouter(nil, auth.NovoEmissor("segredo", time.Minute), ratelimit.Novo(5, time.Minute), handlers{})
}

func TestNovoRouter_Rotas(t *testing.T) {
	r := routerDeTeste()
	rotas := []struct{ metodo, caminho string }{
		{"GET", "/health"},
		{"POST", "/auth/cadastro"},
		{"POST", "/auth/login"},
		{"POST", "/auth/refresh"},
		{"POST", "/auth/logout"},
		{"POST", "/auth/esqueci-senha"},
		{"POST", "/auth/redefinir-senha"},
		{"GET", "/auth/me"},
		{"GET", "/auth/sessao"},
		{"GET", "/sessao"},
		{"PUT", "/sessao/papel"},
		{"GET", "/usuarios/me"},
		{"PUT", "/usuarios/me"},
		{"GET", "/profissionais"},
		{"GET", "/profissionais/7"},
		{"GET", "/profissionais/7/imagem"},
		{"GET", "/profissionais/7/avaliacoes"},
		{"GET", "/profissionais/7/portfolio"},
		{"GET", "/profissionais/7/portfolio/limite"},
		{"GET", "/profissionais/me"},
		{"PUT", "/profissionais/me"},
		{"DELETE", "/profissionais/me"},
		{"POST", "/profissionais/me/imagem"},
		{"POST", "/profissionais/me/portfolio"},
		{"PUT", "/portfolio/3"},
		{"DELETE", "/portfolio/3"},
		{"GET", "/eventos"},
		{"POST", "/eventos"},
		{"GET", "/eventos/meus"},
		{"GET", "/eventos/2"},
		{"PUT", "/eventos/2"},
		{"DELETE", "/eventos/2"},
		{"POST", "/eventos/2/cancelar"},
		{"POST", "/eventos/2/candidaturas"},
		{"GET", "/eventos/2/candidaturas"},
		{"GET", "/candidaturas/minhas"},
		{"POST", "/candidaturas/4/cancelar"},
		{"POST", "/candidaturas/4/aceitar"},
		{"POST", "/candidaturas/4/rejeitar"},
		{"GET", "/reservas"},
		{"POST", "/reservas/5/cancelar"},
		{"POST", "/reservas/5/concluir"},
		{"POST", "/reservas/5/avaliacao"},
		{"GET", "/carrinho"},
		{"POST", "/carrinho/itens"},
		{"DELETE", "/carrinho/itens/7"},
		{"DELETE", "/carrinho"},
		{"POST", "/carrinho/checkout"},
		{"GET", "/pagamentos"},
		{"GET", "/notificacoes"},
		{"GET", "/notificacoes/nao-lidas/total"},
		{"POST", "/notificacoes/lidas"},
		{"PATCH", "/notificacoes/9/lida"},
		{"PATCH", "/notificacoes/9/nao-lida"},
		{"DELETE", "/notificacoes/9"},
	}
	for _, rt := range rotas {
		var m mux.RouteMatch
		if !r.Match(httptest.NewRequest(rt.metodo, rt.caminho, nil), &m) {
			t.Fatalf("%s %s sem rota: %v", rt.metodo, rt.caminho, m.MatchErr)
		}
	}
}

func TestNovoRouter_MetodoErrado(t *testing.T) {
	r := routerDeTeste()
	rotas := []struct{ metodo, caminho string }{
		{"PUT", "/notificacoes/9/lida"},
		{"PUT", "/notificacoes/lidas"},
		{"POST", "/carrinho/finalizar"},
		{"POST", "/portfolio"},
		{"DELETE", "/profissionais/7"},
	}
	for _, rt := range rotas {
		var m mux.RouteMatch
		if r.Match(httptest.NewRequest(rt.metodo, rt.caminho, nil), &m) {
			t.Fatalf("%s %s não deveria casar", rt.metodo, rt.caminho)
		}
	}
}
