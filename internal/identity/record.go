// Package identity holds the locally persisted identity of this
// installation: who the device and user are, which share they belong to,
// and which root document that share is bound to.
//
// Every field is independently optional. A fresh installation starts with
// an empty record; first-use setup fills the fields in one by one, and
// afterwards they are read-only until an explicit reset.
package identity

import "github.com/dmitrijs2005/teamkeeper/internal/team"

// DeviceIdentity is the long-lived cryptographic identity of this
// installation. The key material is carried opaquely; no signing or
// verification happens in this layer.
type DeviceIdentity struct {
	ID         team.DeviceID `json:"id"`
	Name       string        `json:"name"`
	PublicKey  []byte        `json:"public_key"`
	PrivateKey []byte        `json:"private_key"`
}

// UserIdentity is the cryptographic identity of the local user. One user
// may own devices on several installations; exactly one user is "the
// local user" per installation.
type UserIdentity struct {
	ID         team.UserID `json:"id"`
	UserName   string      `json:"user_name"`
	PublicKey  []byte      `json:"public_key"`
	PrivateKey []byte      `json:"private_key"`
}

// Record is a point-in-time view of all persisted identity fields.
// nil pointers mean "never set"; there are no implicit defaults.
type Record struct {
	UserName       *string
	Device         *DeviceIdentity
	User           *UserIdentity
	ShareID        *team.ShareID
	RootDocumentID *team.DocumentID
}

// Complete reports whether every field required to reload an existing
// session is present.
func (r Record) Complete() bool {
	return r.UserName != nil && r.Device != nil && r.User != nil &&
		r.ShareID != nil && r.RootDocumentID != nil
}
