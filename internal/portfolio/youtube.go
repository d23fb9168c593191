package portfolio

import (
	"net/url"
	"strings"
)

func hostYoutube(host string) bool {
	host = strings.ToLower(host)
	for _, base := range []string{"youtube.com", "youtu.be"} {
		if host == base || strings.HasSuffix(host, "."+base) {
			return true
		}
	}
	return false
}

func parseHTTP(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

// EhYoutubeURL reconhece links de youtube.com, youtu.be e subdomínios.
// Entrada malformada devolve false.
func EhYoutubeURL(raw string) bool {
	u, ok := parseHTTP(raw)
	return ok && hostYoutube(u.Hostname())
}

// IDVideoYoutube extrai o ID do vídeo; false quando o link não tem um.
func IDVideoYoutube(raw string) (string, bool) {
	u, ok := parseHTTP(raw)
	if !ok || !hostYoutube(u.Hostname()) {
		return "", false
	}
	partes := strings.Split(strings.Trim(u.Path, "/"), "/")

	if strings.HasSuffix(strings.ToLower(u.Hostname()), "youtu.be") {
		return naoVazio(partes[0])
	}
	switch partes[0] {
	case "watch":
		return naoVazio(u.Query().Get("v"))
	case "embed", "shorts", "live", "v":
		if len(partes) > 1 {
			return naoVazio(partes[1])
		}
	}
	return "", false
}

func naoVazio(id string) (string, bool) {
	id = strings.TrimSpace(id)
	return id, id != ""
}
