package profissional

import (
	"net/url"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// PerfilRequest é o corpo do PUT /profissionais/me
type PerfilRequest struct {
	NomeArtistico    string   `json:"nomeArtistico"`
	TipoProfissional string   `json:"tipoProfissional"`
	Instrumentos     []string `json:"instrumentos"`
	Servicos         []string `json:"servicos"`
	Subgeneros       []string `json:"subgeneros"`
	Bio              string   `json:"bio"`
	Cidade           string   `json:"cidade"`
	Estado           string   `json:"estado"`
	CacheHora        *float64 `json:"cacheHora"`
	CacheEvento      *float64 `json:"cacheEvento"`
	InstagramURL     string   `json:"instagramUrl"`
	YoutubeURL       string   `json:"youtubeUrl"`
	SpotifyURL       string   `json:"spotifyUrl"`
}

func (req *PerfilRequest) Validar() resposta.ErrosCampo {
	erros := resposta.ErrosCampo{}
	req.NomeArtistico = strings.TrimSpace(req.NomeArtistico)
	req.TipoProfissional = strings.TrimSpace(req.TipoProfissional)
	req.Bio = strings.TrimSpace(req.Bio)
	req.Cidade = strings.TrimSpace(req.Cidade)
	req.Estado = strings.ToUpper(strings.TrimSpace(req.Estado))
	req.Instrumentos = limparLista(req.Instrumentos)
	req.Servicos = limparLista(req.Servicos)
	req.Subgeneros = limparLista(req.Subgeneros)

	if req.NomeArtistico == "" {
		erros.Add("nomeArtistico", "Nome artístico é obrigatório")
	}
	if req.TipoProfissional == "" {
		erros.Add("tipoProfissional", "Tipo de profissional é obrigatório")
	}
	if req.Estado != "" && len(req.Estado) != 2 {
		erros.Add("estado", "Use a sigla do estado (ex.: SP)")
	}
	if req.CacheHora != nil && *req.CacheHora < 0 {
		erros.Add("cacheHora", "O cachê não pode ser negativo")
	}
	if req.CacheEvento != nil && *req.CacheEvento < 0 {
		erros.Add("cacheEvento", "O cachê não pode ser negativo")
	}
	for campo, v := range map[string]*string{
		"instagramUrl": &req.InstagramURL,
		"youtubeUrl":   &req.YoutubeURL,
		"spotifyUrl":   &req.SpotifyURL,
	} {
		*v = strings.TrimSpace(*v)
		if *v != "" && !urlHTTP(*v) {
			erros.Add(campo, "Informe um link http(s) válido")
		}
	}
	return erros
}

func (req PerfilRequest) aplicar(p *models.Profissional) {
	p.NomeArtistico = req.NomeArtistico
	p.TipoProfissional = req.TipoProfissional
	p.Instrumentos = req.Instrumentos
	p.Servicos = req.Servicos
	p.Subgeneros = req.Subgeneros
	p.Bio = req.Bio
	p.Cidade = req.Cidade
	p.Estado = req.Estado
	p.CacheHora = req.CacheHora
	p.CacheEvento = req.CacheEvento
	p.InstagramURL = req.InstagramURL
	p.YoutubeURL = req.YoutubeURL
	p.SpotifyURL = req.SpotifyURL
}

func urlHTTP(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func limparLista(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ItemCatalogo é o profissional listado no catálogo, com a média das notas.
type ItemCatalogo struct {
	models.Profissional
	MediaAvaliacao float64 `json:"mediaAvaliacao"`
}
