package sessao

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PreferenciaStore guarda o papel escolhido por cada usuário.
type PreferenciaStore interface {
	Obter(ctx context.Context, userID uint) (models.Papel, bool, error)
	Salvar(ctx context.Context, userID uint, papel models.Papel) error
}

func chavePapel(userID uint) string {
	return fmt.Sprintf("userRole:%d", userID)
}

// RedisPreferencias grava em userRole:{id}, sem expiração.
type RedisPreferencias struct {
	Client *redis.Client
}

func (s *RedisPreferencias) Obter(ctx context.Context, userID uint) (models.Papel, bool, error) {
	v, err := s.Client.Get(ctx, chavePapel(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return models.Papel(v), true, nil
}

func (s *RedisPreferencias) Salvar(ctx context.Context, userID uint, papel models.Papel) error {
	return s.Client.Set(ctx, chavePapel(userID), string(papel), 0).Err()
}

// BancoPreferencias usa a coluna users.papel_atual quando não há Redis.
type BancoPreferencias struct {
	DB *gorm.DB
}

func (s *BancoPreferencias) Obter(ctx context.Context, userID uint) (models.Papel, bool, error) {
	var u models.Usuario
	if err := s.DB.WithContext(ctx).Select("id", "papel_atual").First(&u, userID).Error; err != nil {
		return "", false, err
	}
	if u.PapelAtual == nil {
		return "", false, nil
	}
	return *u.PapelAtual, true, nil
}

func (s *BancoPreferencias) Salvar(ctx context.Context, userID uint, papel models.Papel) error {
	return s.DB.WithContext(ctx).Model(&models.Usuario{}).
		Where("id = ?", userID).
		Update("papel_atual", papel).Error
}

// MemoriaPreferencias serve para testes e desenvolvimento local.
type MemoriaPreferencias struct {
	mu sync.RWMutex
	m  map[uint]models.Papel
}

func NovaMemoriaPreferencias() *MemoriaPreferencias {
	return &MemoriaPreferencias{m: make(map[uint]models.Papel)}
}

func (s *MemoriaPreferencias) Obter(_ context.Context, userID uint) (models.Papel, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[userID]
	return p, ok, nil
}

func (s *MemoriaPreferencias) Salvar(_ context.Context, userID uint, papel models.Papel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[userID] = papel
	return nil
}
