package cookies

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"planet-designer/internal/shared/config"
)

const EditTokenName = "edit_token"

// Settings controls the attributes of cookies handed to the frontend
type Settings struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func FromConfig(cfg *config.Config) Settings {
	return Settings{
		Domain:   extractDomain(cfg.Frontend.URL),
		Secure:   cfg.Auth.CookieSecure,
		SameSite: parseSameSite(cfg.Auth.CookieSameSite),
	}
}

// SetEditToken stores the edit token of a design, scoped to that design's path
func SetEditToken(w http.ResponseWriter, s Settings, designID string, token string, maxAge time.Duration) {
	cookie := s.editTokenCookie(designID)
	cookie.Value = token
	cookie.MaxAge = int(maxAge.Seconds())

	http.SetCookie(w, cookie)
}

func ClearEditToken(w http.ResponseWriter, s Settings, designID string) {
	cookie := s.editTokenCookie(designID)
	cookie.Value = ""
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)
}

func (s Settings) editTokenCookie(designID string) *http.Cookie {
	return &http.Cookie{
		Name:     EditTokenName,
		Path:     fmt.Sprintf("/api/designs/%s", designID),
		Domain:   s.Domain,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: s.SameSite,
	}
}

func extractDomain(frontendURL string) string {
	parsedURL, err := url.Parse(frontendURL)
	if err != nil || parsedURL.Host == "" {
		return ""
	}

	host := strings.Split(parsedURL.Host, ":")[0]
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}

	return host
}

func parseSameSite(sameSiteStr string) http.SameSite {
	switch sameSiteStr {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
