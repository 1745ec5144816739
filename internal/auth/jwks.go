package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

const (
	jwksFetchTimeout = 10 * time.Second

	errJWKSFetchFmt      = "failed to fetch JWKS: %w"
	errJWKSStatusFmt     = "JWKS endpoint returned status %d"
	errJWKSDecodeFmt     = "failed to decode JWKS: %w"
	errJWKSModulusFmt    = "failed to decode key modulus: %w"
	errJWKSExponentFmt   = "failed to decode key exponent: %w"
	errJWKSNoUsableKeys  = "JWKS contains no usable RSA keys"
	keyTypeRSA           = "RSA"
)

type jwksDocument struct {
	Keys []jwkEntry `json:"keys"`
}

type jwkEntry struct {
	KeyType  string `json:"kty"`
	KeyID    string `json:"kid"`
	Use      string `json:"use"`
	Modulus  string `json:"n"`
	Exponent string `json:"e"`
}

// KeySet caches the identity provider's published RSA keys by key ID.
// Refresh replaces the whole set; lookups on an unknown key ID trigger
// at most one refresh per verification.
type KeySet struct {
	url    string
	client *http.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

func NewKeySet(jwksURL string) *KeySet {
	return &KeySet{
		url:    jwksURL,
		client: &http.Client{Timeout: jwksFetchTimeout},
		keys:   make(map[string]*rsa.PublicKey),
	}
}

// Key returns the public key for a key ID, refreshing the cached set
// once if the ID is unknown.
func (ks *KeySet) Key(kid string) (*rsa.PublicKey, error) {
	ks.mu.RLock()
	key, ok := ks.keys[kid]
	ks.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := ks.Refresh(); err != nil {
		return nil, err
	}

	ks.mu.RLock()
	key, ok = ks.keys[kid]
	ks.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf(msgUnknownKeyID, kid)
	}

	return key, nil
}

// Refresh fetches the JWKS document and swaps in the parsed key set.
func (ks *KeySet) Refresh() error {
	resp, err := ks.client.Get(ks.url)
	if err != nil {
		return fmt.Errorf(errJWKSFetchFmt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(errJWKSStatusFmt, resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf(errJWKSDecodeFmt, err)
	}

	parsed := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, entry := range doc.Keys {
		if entry.KeyType != keyTypeRSA || entry.KeyID == "" {
			continue
		}

		key, err := parseRSAKey(entry)
		if err != nil {
			return err
		}
		parsed[entry.KeyID] = key
	}

	if len(parsed) == 0 {
		return fmt.Errorf(errJWKSNoUsableKeys)
	}

	ks.mu.Lock()
	ks.keys = parsed
	ks.mu.Unlock()

	return nil
}

func parseRSAKey(entry jwkEntry) (*rsa.PublicKey, error) {
	modulus, err := base64.RawURLEncoding.DecodeString(entry.Modulus)
	if err != nil {
		return nil, fmt.Errorf(errJWKSModulusFmt, err)
	}

	exponent, err := base64.RawURLEncoding.DecodeString(entry.Exponent)
	if err != nil {
		return nil, fmt.Errorf(errJWKSExponentFmt, err)
	}

	e := 0
	for _, b := range exponent {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: e,
	}, nil
}
