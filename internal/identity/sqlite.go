package identity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/teamkeeper/internal/dbx"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// Keys under which identity fields live in the metadata table.
const (
	keyUserName       = "user_name"
	keyDevice         = "device"
	keyUser           = "user"
	keyShareID        = "share_id"
	keyRootDocumentID = "root_document_id"
)

// SQLiteStore persists the identity record in a key/value metadata table.
// Scalar fields are stored as raw bytes, structured fields as JSON.
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, present, err := s.get(ctx, key)
	if err != nil || !present {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode metadata[%s]: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) setJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode metadata[%s]: %w", key, err)
	}
	return s.set(ctx, key, raw)
}

func (s *SQLiteStore) GetUserName(ctx context.Context) (string, bool, error) {
	raw, present, err := s.get(ctx, keyUserName)
	return string(raw), present, err
}

func (s *SQLiteStore) SetUserName(ctx context.Context, value string) error {
	return s.set(ctx, keyUserName, []byte(value))
}

func (s *SQLiteStore) GetDevice(ctx context.Context) (DeviceIdentity, bool, error) {
	var d DeviceIdentity
	present, err := s.getJSON(ctx, keyDevice, &d)
	return d, present, err
}

func (s *SQLiteStore) SetDevice(ctx context.Context, value DeviceIdentity) error {
	return s.setJSON(ctx, keyDevice, value)
}

func (s *SQLiteStore) GetUser(ctx context.Context) (UserIdentity, bool, error) {
	var u UserIdentity
	present, err := s.getJSON(ctx, keyUser, &u)
	return u, present, err
}

func (s *SQLiteStore) SetUser(ctx context.Context, value UserIdentity) error {
	return s.setJSON(ctx, keyUser, value)
}

func (s *SQLiteStore) GetShareID(ctx context.Context) (team.ShareID, bool, error) {
	raw, present, err := s.get(ctx, keyShareID)
	return team.ShareID(raw), present, err
}

func (s *SQLiteStore) SetShareID(ctx context.Context, value team.ShareID) error {
	return s.set(ctx, keyShareID, []byte(value))
}

func (s *SQLiteStore) GetRootDocumentID(ctx context.Context) (team.DocumentID, bool, error) {
	raw, present, err := s.get(ctx, keyRootDocumentID)
	return team.DocumentID(raw), present, err
}

func (s *SQLiteStore) SetRootDocumentID(ctx context.Context, value team.DocumentID) error {
	return s.set(ctx, keyRootDocumentID, []byte(value))
}

func (s *SQLiteStore) Load(ctx context.Context) (Record, error) {
	var rec Record

	if v, ok, err := s.GetUserName(ctx); err != nil {
		return Record{}, err
	} else if ok {
		rec.UserName = &v
	}
	if v, ok, err := s.GetDevice(ctx); err != nil {
		return Record{}, err
	} else if ok {
		rec.Device = &v
	}
	if v, ok, err := s.GetUser(ctx); err != nil {
		return Record{}, err
	} else if ok {
		rec.User = &v
	}
	if v, ok, err := s.GetShareID(ctx); err != nil {
		return Record{}, err
	} else if ok {
		rec.ShareID = &v
	}
	if v, ok, err := s.GetRootDocumentID(ctx); err != nil {
		return Record{}, err
	} else if ok {
		rec.RootDocumentID = &v
	}
	return rec, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
