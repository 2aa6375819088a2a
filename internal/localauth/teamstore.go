package localauth

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/teamkeeper/internal/common"
	"github.com/dmitrijs2005/teamkeeper/internal/dbx"
	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// TeamStore persists team snapshots in the teams table, keyed by share
// id. Each save replaces the previous snapshot for the share.
type TeamStore struct {
	db dbx.DBTX
}

func NewTeamStore(db dbx.DBTX) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) Save(ctx context.Context, shareID team.ShareID, t *team.Team) error {
	raw, err := json.Marshal(t.State())
	if err != nil {
		return fmt.Errorf("failed to encode team state: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (share_id, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(share_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, string(shareID), raw)
	if err != nil {
		return fmt.Errorf("failed to save team[%s]: %w", shareID, err)
	}
	return nil
}

func (s *TeamStore) Get(ctx context.Context, shareID team.ShareID) (*team.Team, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT state FROM teams WHERE share_id = ?`, string(shareID)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team[%s]: %w", shareID, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team[%s]: %w", shareID, err)
	}

	var state team.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode team[%s]: %w", shareID, err)
	}
	return team.New(state), nil
}
