// Package reference issues and opens estimate references: fernet tokens that
// seal the input of an estimate so it can be recomputed later without the
// server keeping any state.
package reference

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
)

// Claims is the payload sealed in a reference.
type Claims struct {
	EstimateID string                 `json:"id"`
	Input      model.TransactionInput `json:"input"`
}

// Keyring holds the fernet keys used for references. The first key signs new
// references; every key in the ring is accepted when opening one, so older
// references survive a rotation until they age out of the ring.
type Keyring struct {
	mu   sync.RWMutex
	keys []*fernet.Key
	keep int
	ttl  time.Duration
}

// NewKeyring builds a keyring from base64 fernet keys, newest first. A fresh
// key is generated when none are given. keep bounds the ring size (minimum 1)
// and ttl bounds the age of accepted references (0 disables expiry).
func NewKeyring(encoded []string, keep int, ttl time.Duration) (*Keyring, error) {
	if keep < 1 {
		keep = 1
	}

	var keys []*fernet.Key
	if len(encoded) > 0 {
		decoded, err := fernet.DecodeKeys(encoded...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidReferenceKey, err)
		}
		keys = decoded
	} else {
		k, err := generateKey()
		if err != nil {
			return nil, err
		}
		keys = []*fernet.Key{k}
	}

	if len(keys) > keep {
		keys = keys[:keep]
	}

	return &Keyring{keys: keys, keep: keep, ttl: ttl}, nil
}

// Seal encrypts and signs claims with the current key.
func (r *Keyring) Seal(c Claims) (string, error) {
	msg, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFailedToSealReference, err)
	}

	r.mu.RLock()
	current := r.keys[0]
	r.mu.RUnlock()

	tok, err := fernet.EncryptAndSign(msg, current)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrFailedToSealReference, err)
	}
	return string(tok), nil
}

// Open verifies token against every key in the ring and returns its claims.
// Forged, corrupted and expired tokens all yield ErrInvalidReference.
func (r *Keyring) Open(token string) (Claims, error) {
	r.mu.RLock()
	keys := append([]*fernet.Key(nil), r.keys...)
	r.mu.RUnlock()

	msg := fernet.VerifyAndDecrypt([]byte(token), r.ttl, keys)
	if msg == nil {
		return Claims{}, apperrors.ErrInvalidReference
	}

	var c Claims
	if err := json.Unmarshal(msg, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidReference, err)
	}
	return c, nil
}

// Rotate makes a freshly generated key current and drops keys beyond the
// ring size.
func (r *Keyring) Rotate() error {
	k, err := generateKey()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys = append([]*fernet.Key{k}, r.keys...)
	if len(r.keys) > r.keep {
		r.keys = r.keys[:r.keep]
	}
	return nil
}

// Len returns the number of keys currently in the ring.
func (r *Keyring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// TTL returns how long references stay valid.
func (r *Keyring) TTL() time.Duration {
	return r.ttl
}

// ScheduleRotation registers Rotate on c using a standard cron spec or
// descriptor such as "@daily".
func (r *Keyring) ScheduleRotation(c *cron.Cron, spec string, logger zerolog.Logger) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		if err := r.Rotate(); err != nil {
			logger.Error().Err(err).Msg("reference key rotation failed")
			return
		}
		logger.Info().Int("keys", r.Len()).Msg("rotated reference key")
	})
	if err != nil {
		return 0, fmt.Errorf("invalid rotation schedule %q: %w", spec, err)
	}
	return id, nil
}

func generateKey() (*fernet.Key, error) {
	k := new(fernet.Key)
	if err := k.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate reference key: %w", err)
	}
	return k, nil
}
