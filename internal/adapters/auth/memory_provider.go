package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/quixlabs/lead-capture/internal/core"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when authentication fails. Deliberately
// the same for unknown users and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// MemoryProvider is an in-memory implementation of the IdentityProvider
// interface. The user set is fixed at construction; passwords are stored as
// bcrypt hashes and the plaintext is discarded.
type MemoryProvider struct {
	users  map[string][]byte
	logger *zap.Logger
}

// NewMemoryProvider seeds the demo user set, every account sharing the
// configured admin password. A stand-in for a real credential store: callers
// only depend on the IdentityProvider port.
func NewMemoryProvider(usernames []string, password string, logger *zap.Logger) (*MemoryProvider, error) {
	users := make(map[string][]byte, len(usernames))
	for _, name := range usernames {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", name, err)
		}
		users[name] = hash
	}

	logger.Info("Seeded in-memory user set", zap.Int("users", len(users)))

	return &MemoryProvider{
		users:  users,
		logger: logger,
	}, nil
}

// Authenticate resolves credentials to an identity
func (p *MemoryProvider) Authenticate(ctx context.Context, username, password string) (*core.Identity, error) {
	hash, ok := p.users[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		p.logger.Debug("Password mismatch", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return &core.Identity{Username: username}, nil
}
