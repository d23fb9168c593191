package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
)

// Webhook repassa cada notificação criada para uma URL externa.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NovoWebhook(url string) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 5 * time.Second}}
}

func (wh *Webhook) Enviar(ctx context.Context, n *models.Notificacao) error {
	body, err := json.Marshal(NovoEvento(n))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wh.Client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
