package backend

import (
	"context"

	"github.com/charmbracelet/kanban/pkg/db"
)

// SweepResult counts what an expiry sweep changed.
type SweepResult struct {
	APIKeys int64
	Invites int64
}

// ExpirySweep deactivates expired API keys and revokes expired pending
// invites. Authentication checks expiry on its own, so this only keeps the
// stored state tidy.
func (d *Backend) ExpirySweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	now := d.now()
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		res.APIKeys, err = d.store.DeactivateExpiredAPIKeys(ctx, tx, now)
		if err != nil {
			return db.WrapError(err)
		}

		res.Invites, err = d.store.RevokeExpiredInvites(ctx, tx, now)
		return db.WrapError(err)
	})
	return res, err
}
