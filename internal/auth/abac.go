package auth

import (
	"context"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/metrics"
)

// OwnershipPolicy is the attribute check applied to per-user resources.
// Drivers act only on their own user id; admins act on anyone.
type OwnershipPolicy struct {
	Enforce bool
}

func NewOwnershipPolicy(enforce bool) *OwnershipPolicy {
	return &OwnershipPolicy{Enforce: enforce}
}

// CheckOwner returns ErrNotOwner when the caller in ctx may not act on ownerID.
// Requests that passed no guard carry no identity and are not checked.
func (p *OwnershipPolicy) CheckOwner(ctx context.Context, ownerID int64) *internal.AppError {
	if p == nil || !p.Enforce {
		return nil
	}
	identity, ok := internal.IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	if !identity.CanActFor(ownerID) {
		metrics.AccessDeniedTotal.WithLabelValues("not_owner").Inc()
		return internal.ErrNotOwner
	}
	return nil
}
