package smartstore

import (
	"os"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TokenCache persiste o token de acesso em arquivo entre execuções,
// evitando reemissão a cada slot. Falhas de leitura ou escrita nunca
// derrubam a coleta; no pior caso o token é reemitido.
type TokenCache struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

type cachedToken struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

func NewTokenCache(path string) *TokenCache {
	return &TokenCache{
		path: path,
		now:  time.Now,
	}
}

// Get devolve o token em cache se ainda for válido pela margem dada.
func (c *TokenCache) Get(margin time.Duration) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return "", false
	}

	var cached cachedToken
	if err := json.Unmarshal(data, &cached); err != nil {
		log.L.WithError(err).Warn("Cache de token ilegível, reemitindo")
		return "", false
	}

	if cached.AccessToken == "" || cached.ExpiresAt == 0 {
		return "", false
	}

	remaining := time.Duration(cached.ExpiresAt-c.now().Unix()) * time.Second
	if remaining <= margin {
		return "", false
	}

	return cached.AccessToken, true
}

// Put grava o token com o instante absoluto de expiração.
func (c *TokenCache) Put(accessToken string, expiresIn int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if expiresIn < 0 {
		expiresIn = 0
	}

	data, err := json.Marshal(cachedToken{
		AccessToken: accessToken,
		ExpiresAt:   c.now().Unix() + expiresIn,
	})
	if err != nil {
		return
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		log.L.WithError(err).Warn("Não foi possível gravar o cache de token")
	}
}
