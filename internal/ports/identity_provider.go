package ports

import (
	"context"

	"github.com/quixlabs/lead-capture/internal/core"
)

// IdentityProvider resolves credentials to an authenticated identity.
// The enrichment core only ever sees the resolved identity, never raw
// credentials.
type IdentityProvider interface {
	Authenticate(ctx context.Context, username, password string) (*core.Identity, error)
}
