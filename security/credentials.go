// Package security stores exchange API credentials encrypted at rest.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/evdnx/gocommex/rest"
)

const (
	storeVersion     = 1
	saltSize         = 16
	keySize          = 32
	kdfIterations    = 100000
	defaultStoreMode = 0600
)

// ErrCredentialNotFound is returned when a name has no stored credentials.
var ErrCredentialNotFound = errors.New("credentials not found")

type credential struct {
	APIKey    string    `json:"apiKey"`
	APISecret string    `json:"apiSecret"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// storeFile is the on-disk layout. Data is the AES-GCM sealed JSON of the credential map,
// prefixed with its nonce.
type storeFile struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`
	Data    string `json:"data"`
}

// CredentialStore keeps named API key pairs in a passphrase-encrypted file.
// The file is rewritten on every change.
type CredentialStore struct {
	path  string
	key   []byte
	salt  []byte
	creds map[string]credential
	mu    sync.RWMutex
}

// OpenCredentialStore opens the store at path, creating an empty one if the file does not exist.
func OpenCredentialStore(path, passphrase string) (*CredentialStore, error) {
	if passphrase == "" {
		return nil, rest.NewConfigurationError("store_passphrase_missing", "credential store passphrase must not be empty")
	}
	if path == "" {
		return nil, rest.NewConfigurationError("store_path_missing", "credential store path must not be empty")
	}

	store := &CredentialStore{
		path:  path,
		creds: make(map[string]credential),
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		store.salt = make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, store.salt); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		store.key = deriveKey(passphrase, store.salt)
		return store, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read credential store: %w", err)
	}

	if err := store.load(raw, passphrase); err != nil {
		return nil, err
	}
	return store, nil
}

// OpenCredentialStoreFromEnv reads the passphrase from the named environment variable.
func OpenCredentialStoreFromEnv(path, passphraseEnv string) (*CredentialStore, error) {
	passphrase := os.Getenv(passphraseEnv)
	if passphrase == "" {
		return nil, rest.NewConfigurationError("store_passphrase_missing",
			fmt.Sprintf("environment variable %s not set", passphraseEnv))
	}
	return OpenCredentialStore(path, passphrase)
}

func deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, kdfIterations, keySize, sha256.New)
}

// Put stores credentials under name, replacing any previous pair.
func (s *CredentialStore) Put(name, apiKey, apiSecret string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return rest.NewInvalidArgumentError("credential_name_missing", "credential name must not be empty")
	}
	if _, err := rest.NewIdentity(apiKey, apiSecret); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cloneCreds()
	next[name] = credential{
		APIKey:    strings.TrimSpace(apiKey),
		APISecret: apiSecret,
		UpdatedAt: time.Now().UTC(),
	}
	return s.commit(next)
}

// Rotate replaces existing credentials under name.
func (s *CredentialStore) Rotate(name, apiKey, apiSecret string) error {
	s.mu.RLock()
	_, exists := s.creds[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrCredentialNotFound, name)
	}
	return s.Put(name, apiKey, apiSecret)
}

// Identity returns the signing identity stored under name.
func (s *CredentialStore) Identity(name string) (*rest.Identity, error) {
	s.mu.RLock()
	cred, exists := s.creds[name]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, name)
	}
	return rest.NewIdentity(cred.APIKey, cred.APISecret)
}

// UpdatedAt reports when the credentials under name were last written.
func (s *CredentialStore) UpdatedAt(name string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, exists := s.creds[name]
	return cred.UpdatedAt, exists
}

// Delete removes the credentials stored under name.
func (s *CredentialStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.creds[name]; !exists {
		return fmt.Errorf("%w: %s", ErrCredentialNotFound, name)
	}
	next := s.cloneCreds()
	delete(next, name)
	return s.commit(next)
}

// Names returns the stored credential names in sorted order.
func (s *CredentialStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.creds))
	for name := range s.creds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *CredentialStore) cloneCreds() map[string]credential {
	next := make(map[string]credential, len(s.creds)+1)
	for name, cred := range s.creds {
		next[name] = cred
	}
	return next
}

// commit writes creds to disk and only then makes them current. The write lock must be held.
func (s *CredentialStore) commit(creds map[string]credential) error {
	if err := s.save(creds); err != nil {
		return err
	}
	s.creds = creds
	return nil
}

func (s *CredentialStore) save(creds map[string]credential) error {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	sealed, err := seal(s.key, plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}
	data, err := json.Marshal(storeFile{
		Version: storeVersion,
		Salt:    base64.StdEncoding.EncodeToString(s.salt),
		Data:    base64.StdEncoding.EncodeToString(sealed),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal credential store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create credential store directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, defaultStoreMode); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace credential store: %w", err)
	}
	return nil
}

func (s *CredentialStore) load(raw []byte, passphrase string) error {
	var file storeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse credential store: %w", err)
	}
	if file.Version != storeVersion {
		return fmt.Errorf("unsupported credential store version %d", file.Version)
	}
	salt, err := base64.StdEncoding.DecodeString(file.Salt)
	if err != nil || len(salt) != saltSize {
		return errors.New("credential store has an invalid salt")
	}
	sealed, err := base64.StdEncoding.DecodeString(file.Data)
	if err != nil {
		return errors.New("credential store has invalid data encoding")
	}

	key := deriveKey(passphrase, salt)
	plaintext, err := open(key, sealed)
	if err != nil {
		// A wrong passphrase and a tampered file are indistinguishable under GCM.
		return rest.NewConfigurationError("store_decrypt_failed", "credential store could not be decrypted")
	}
	creds := make(map[string]credential)
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return fmt.Errorf("failed to unmarshal credentials: %w", err)
	}

	s.salt = salt
	s.key = key
	s.creds = creds
	return nil
}

func seal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func open(key, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
