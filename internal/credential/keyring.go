package credential

import (
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "geniusboard"

// APITokenKey is the keyring entry holding the backend bearer token.
const APITokenKey = "api-token"

// tokenEnvVar overrides the keyring when set; useful for CI and
// one-off runs against a local backend.
const tokenEnvVar = "GENIUSBOARD_API_TOKEN"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/geniusboard/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("geniusboard-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// APIToken resolves the backend token, preferring the environment
// variable over the stored keyring entry. An empty string means no
// token is configured; the client then sends unauthenticated requests.
func APIToken() (string, error) {
	if token := os.Getenv(tokenEnvVar); token != "" {
		return token, nil
	}

	token, err := Get(APITokenKey)
	if err != nil {
		return "", nil
	}
	return token, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
