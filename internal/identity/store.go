package identity

import (
	"context"

	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// Store is the read/write contract for the persisted identity record.
//
// Semantics:
//   - Reads return the previously set value, or present=false if the
//     field was never set.
//   - Writes are last-write-wins, idempotent, and durable by the time
//     the call returns, so the bootstrap machine can rely on a field
//     immediately after setting it.
type Store interface {
	GetUserName(ctx context.Context) (value string, present bool, err error)
	SetUserName(ctx context.Context, value string) error

	GetDevice(ctx context.Context) (value DeviceIdentity, present bool, err error)
	SetDevice(ctx context.Context, value DeviceIdentity) error

	GetUser(ctx context.Context) (value UserIdentity, present bool, err error)
	SetUser(ctx context.Context, value UserIdentity) error

	GetShareID(ctx context.Context) (value team.ShareID, present bool, err error)
	SetShareID(ctx context.Context, value team.ShareID) error

	GetRootDocumentID(ctx context.Context) (value team.DocumentID, present bool, err error)
	SetRootDocumentID(ctx context.Context, value team.DocumentID) error

	// Load reads every field in one pass.
	Load(ctx context.Context) (Record, error)

	// Clear wipes all identity fields (explicit reset/logout).
	Clear(ctx context.Context) error
}
