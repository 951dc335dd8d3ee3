package access

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

// Sentinel rejections. A store failure during lookup is deliberately folded
// into ErrInvalidKey so callers never learn internal detail from a 401.
var (
	ErrMissingKey    = errors.New("API key is required")
	ErrInvalidKey    = errors.New("Invalid API key")
	ErrLimitExceeded = errors.New("API call limit exceeded")
)

const storeTimeout = 5 * time.Second

// KeyValidator resolves a presented key to an account and charges one call
// against its quota. Quota is charged on attempt: the increment happens
// before any resource logic runs, so a request that fails downstream has
// still consumed a call.
type KeyValidator struct {
	users *repositories.APIUserRepository
}

func NewKeyValidator(users *repositories.APIUserRepository) *KeyValidator {
	return &KeyValidator{users: users}
}

// Validate admits or rejects a presented key. On admission the returned
// account reflects the counters as they stood before this call's increment.
func (v *KeyValidator) Validate(ctx context.Context, key string) (*models.APIUser, error) {
	if key == "" {
		return nil, ErrMissingKey
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := v.users.GetByKey(ctx, key)
	if err != nil {
		log.Error().Err(err).Msg("api key lookup failed")
		return nil, ErrInvalidKey
	}
	if user == nil {
		return nil, ErrInvalidKey
	}

	// Fast path: a counter already at the limit is rejected without
	// touching the row.
	if user.UsageCount >= user.UsageLimit {
		return nil, ErrLimitExceeded
	}

	ok, err := v.users.ConsumeQuota(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent call took the last slot between the read and
		// the conditional update.
		return nil, ErrLimitExceeded
	}

	return user, nil
}
