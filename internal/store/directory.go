package store

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/schooldesk/schooldesk/internal/model"
)

const (
	keyAccounts = "users"
	keySession  = "currentUser"
)

const sessionTTL = 24 * time.Hour

// Accounts returns the registered account directory.
func (s *Store) Accounts() []model.Account {
	return Get(s, keyAccounts, []model.Account{})
}

// ReplaceAccounts overwrites the directory.
func (s *Store) ReplaceAccounts(list []model.Account) error {
	return Set(s, keyAccounts, list)
}

// CreateAccount registers a new account. Emails are unique
// case-insensitively; the password is stored as a bcrypt hash. The
// directory is unchanged on rejection.
func (s *Store) CreateAccount(name, email, password string, role model.Role, phone string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	accounts, err := get(s, keyAccounts, []model.Account{})
	if err != nil {
		return model.Account{}, err
	}
	for _, a := range accounts {
		if strings.EqualFold(a.Email, email) {
			return model.Account{}, fmt.Errorf("account %s: %w", email, ErrDuplicateEmail)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}
	if name == "" {
		name = email
	}
	acct := model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        phone,
	}
	if err := set(s, keyAccounts, append(accounts, acct)); err != nil {
		return model.Account{}, err
	}
	slog.Info("registered account", "email", acct.Email, "role", acct.Role)
	return acct, nil
}

// Authenticate returns the account whose email matches case-insensitively
// and whose password matches exactly, or ErrBadCredentials.
func (s *Store) Authenticate(email, password string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, a := range s.Accounts() {
		if strings.ToLower(a.Email) != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
			break
		}
		return a, nil
	}
	return model.Account{}, ErrBadCredentials
}

// StartSession copies the account's public fields into the single session
// slot, replacing any prior session. The password hash is never retained.
func (s *Store) StartSession(acct model.Account) (model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return model.Session{}, fmt.Errorf("session token: %w", err)
	}
	now := time.Now()
	sess := model.Session{
		Token:     token,
		Name:      acct.Name,
		Email:     acct.Email,
		Role:      acct.Role,
		Phone:     acct.Phone,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := Set(s, keySession, sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// CurrentSession returns the session matching token, or nil when the slot
// is empty, expired, or holds a different token.
func (s *Store) CurrentSession(token string) *model.Session {
	if token == "" {
		return nil
	}
	sess := Get[*model.Session](s, keySession, nil)
	if sess == nil {
		return nil
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.ClearSession()
		return nil
	}
	if len(sess.Token) != len(token) ||
		subtle.ConstantTimeCompare([]byte(sess.Token), []byte(token)) != 1 {
		return nil
	}
	return sess
}

// HasSession reports whether any unexpired session occupies the slot.
func (s *Store) HasSession() bool {
	sess := Get[*model.Session](s, keySession, nil)
	return sess != nil && time.Now().Before(sess.ExpiresAt)
}

// ClearSession empties the session slot.
func (s *Store) ClearSession() error {
	return s.Delete(keySession)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
