// Package armazenamento guarda as imagens de perfil no Cloudinary.
package armazenamento

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Armazenamento é o que o perfil profissional precisa do storage de objetos.
type Armazenamento interface {
	EnviarImagem(ctx context.Context, publicID string, arquivo io.Reader) (string, error)
	URLPublica(publicID string) (string, error)
	Existe(ctx context.Context, url string) (bool, error)
}

// PublicIDProfissional é o caminho da imagem de um profissional no bucket.
func PublicIDProfissional(profissionalID uint) string {
	return fmt.Sprintf("professionals/%d", profissionalID)
}

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	preset string
	client *http.Client
}

func NovoCloudinary(cloudName, apiKey, apiSecret, uploadPreset string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configurar cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, preset: uploadPreset, client: &http.Client{Timeout: 5 * time.Second}}, nil
}

// EnviarImagem sobrescreve a imagem no publicID e devolve a URL https.
func (c *Cloudinary) EnviarImagem(ctx context.Context, publicID string, arquivo io.Reader) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, arquivo, uploader.UploadParams{
		PublicID:       publicID,
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
		UploadPreset:   c.preset,
		Transformation: "c_thumb,w_400,h_400",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", publicID, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (c *Cloudinary) URLPublica(publicID string) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", err
	}
	img.Config.URL.Secure = true
	return img.String()
}

func (c *Cloudinary) Existe(ctx context.Context, url string) (bool, error) {
	return Sondar(ctx, c.client, url)
}

// Sondar faz HEAD na URL: 2xx existe, 404 não existe, o resto é erro.
func Sondar(ctx context.Context, client *http.Client, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("HEAD %s: status %d", url, resp.StatusCode)
	}
}
