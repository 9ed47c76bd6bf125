package lti

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// JWK is the subset of RFC 7517 this tool exchanges: RSA signing keys.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}

// platformKeyset fetches and caches the platform's public keys. The cache
// is refreshed when a requested kid is missing, so platform key rotation
// costs one extra fetch.
type platformKeyset struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	byKid   map[string]*rsa.PublicKey
	fetched time.Time
}

func newPlatformKeyset(url string) *platformKeyset {
	return &platformKeyset{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		byKid:  map[string]*rsa.PublicKey{},
	}
}

func (p *platformKeyset) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if k, ok := p.byKid[kid]; ok {
		return k, nil
	}
	if time.Since(p.fetched) < time.Minute {
		// Just fetched and the kid still is not there.
		return nil, fmt.Errorf("jwks: no key %q", kid)
	}
	if err := p.refreshLocked(ctx); err != nil {
		return nil, err
	}
	if k, ok := p.byKid[kid]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("jwks: no key %q", kid)
}

func (p *platformKeyset) refreshLocked(ctx context.Context) error {
	if p.url == "" {
		return errors.New("jwks: platform url not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks: http %d", resp.StatusCode)
	}

	var set JWKS
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return err
	}
	fresh := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			continue
		}
		fresh[k.Kid] = pub
	}
	p.byKid = fresh
	p.fetched = time.Now()
	return nil
}

func (k JWK) publicKey() (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	if e <= 1 {
		return nil, errors.New("jwks: bad exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
