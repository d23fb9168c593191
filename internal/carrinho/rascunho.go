package carrinho

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/redis/go-redis/v9"
)

// ValidadeRascunho é quanto tempo um carrinho parado fica guardado.
const ValidadeRascunho = 24 * time.Hour

type ItemRascunho struct {
	ProfissionalID uint               `json:"profissionalId"`
	Tipo           models.TipoReserva `json:"tipo"`
	Horas          float64            `json:"horas"`
}

// Rascunho é o carrinho em montagem de um contratante.
type Rascunho struct {
	ContratanteID uint           `json:"contratanteId"`
	EventoID      *uint          `json:"eventoId,omitempty"`
	Itens         []ItemRascunho `json:"itens"`
}

// RascunhoStore devolve nil, nil quando não há rascunho.
type RascunhoStore interface {
	Obter(ctx context.Context, contratanteID uint) (*Rascunho, error)
	Salvar(ctx context.Context, r *Rascunho) error
	Limpar(ctx context.Context, contratanteID uint) error
}

func chaveCarrinho(contratanteID uint) string {
	return fmt.Sprintf("carrinho:%d", contratanteID)
}

type RedisRascunhos struct {
	Client *redis.Client
}

func (s *RedisRascunhos) Obter(ctx context.Context, contratanteID uint) (*Rascunho, error) {
	b, err := s.Client.Get(ctx, chaveCarrinho(contratanteID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var r Rascunho
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("rascunho corrompido para %d: %w", contratanteID, err)
	}
	return &r, nil
}

// Salvar renova a validade a cada alteração.
func (s *RedisRascunhos) Salvar(ctx context.Context, r *Rascunho) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, chaveCarrinho(r.ContratanteID), b, ValidadeRascunho).Err()
}

func (s *RedisRascunhos) Limpar(ctx context.Context, contratanteID uint) error {
	return s.Client.Del(ctx, chaveCarrinho(contratanteID)).Err()
}

// MemoriaRascunhos guarda cópias para que quem chama não altere o estado.
type MemoriaRascunhos struct {
	mu sync.Mutex
	m  map[uint]Rascunho
}

func NovaMemoriaRascunhos() *MemoriaRascunhos {
	return &MemoriaRascunhos{m: make(map[uint]Rascunho)}
}

func (s *MemoriaRascunhos) Obter(_ context.Context, contratanteID uint) (*Rascunho, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.m[contratanteID]
	if !ok {
		return nil, nil
	}
	r.Itens = append([]ItemRascunho(nil), r.Itens...)
	return &r, nil
}

func (s *MemoriaRascunhos) Salvar(_ context.Context, r *Rascunho) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *r
	c.Itens = append([]ItemRascunho(nil), r.Itens...)
	s.m[r.ContratanteID] = c
	return nil
}

func (s *MemoriaRascunhos) Limpar(_ context.Context, contratanteID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, contratanteID)
	return nil
}
