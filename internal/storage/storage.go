// Package storage holds the per-session slot stores. A slot is a named JSON
// document that is always replaced as a whole.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Slot keys used by the storefront.
const (
	KeyCart          = "cart"
	KeySelectedItems = "selected-checkout-items"
	KeyOrders        = "orders"
	KeyCheckoutDraft = "checkout-form-draft"
)

var ErrNotFound = errors.New("storage: key not found")

// Storage is a minimal key/value store.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// LoadJSON decodes the document stored under key into v. A missing key
// returns ErrNotFound.
func LoadJSON(s Storage, key string, v interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func SaveJSON(s Storage, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, data)
}

type namespaced struct {
	base   Storage
	prefix string
}

// Namespaced scopes every key of base under namespace.
func Namespaced(base Storage, namespace string) Storage {
	return &namespaced{base: base, prefix: namespace + "/"}
}

func (n *namespaced) Get(key string) ([]byte, error) {
	return n.base.Get(n.prefix + key)
}

func (n *namespaced) Set(key string, value []byte) error {
	return n.base.Set(n.prefix+key, value)
}

func (n *namespaced) Remove(key string) error {
	return n.base.Remove(n.prefix + key)
}

// splitKey separates "namespace/key" into its parts.
func splitKey(fullKey string) (string, string) {
	if i := strings.LastIndex(fullKey, "/"); i >= 0 {
		return fullKey[:i], fullKey[i+1:]
	}
	return "", fullKey
}
