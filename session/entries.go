package session

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EnsureSessionID returns the guest cart session id, creating and persisting one if absent.
func EnsureSessionID(store Store) (string, error) {
	id, found, err := store.Get(KeySessionID)
	if err != nil {
		return "", fmt.Errorf("failed to read session id: %w", err)
	}
	if found && id != "" {
		return id, nil
	}

	id = "session_" + uuid.NewString()
	if err := store.Set(KeySessionID, id); err != nil {
		return "", fmt.Errorf("failed to store session id: %w", err)
	}
	return id, nil
}

// SessionID returns the guest cart session id without creating one.
func SessionID(store Store) string {
	id, _, err := store.Get(KeySessionID)
	if err != nil {
		return ""
	}
	return id
}

// SaveSelectedProduct JSON-encodes v under the selectedProduct key.
func SaveSelectedProduct(store Store, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode selected product: %w", err)
	}
	return store.Set(KeySelectedProduct, string(data))
}

// LoadSelectedProduct decodes the selectedProduct entry into v. found is false when nothing is stored.
func LoadSelectedProduct(store Store, v any) (found bool, err error) {
	raw, found, err := store.Get(KeySelectedProduct)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("failed to decode selected product: %w", err)
	}
	return true, nil
}

// BaseURL returns the persisted API base URL override, if any.
func BaseURL(store Store) string {
	raw, _, err := store.Get(KeyAPIBaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// SaveBaseURL persists an API base URL override. An empty url removes it.
func SaveBaseURL(store Store, url string) error {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return store.Remove(KeyAPIBaseURL)
	}
	return store.Set(KeyAPIBaseURL, url)
}
