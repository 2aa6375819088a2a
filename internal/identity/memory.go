package identity

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/teamkeeper/internal/team"
)

// MemoryStore is an in-memory Store used by tests and throwaway
// sessions. Same last-write-wins contract as the sqlite store.
type MemoryStore struct {
	mu  sync.RWMutex
	rec Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetUserName(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec.UserName == nil {
		return "", false, nil
	}
	return *s.rec.UserName, true, nil
}

func (s *MemoryStore) SetUserName(_ context.Context, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.UserName = &value
	return nil
}

func (s *MemoryStore) GetDevice(_ context.Context) (DeviceIdentity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec.Device == nil {
		return DeviceIdentity{}, false, nil
	}
	return *s.rec.Device, true, nil
}

func (s *MemoryStore) SetDevice(_ context.Context, value DeviceIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Device = &value
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context) (UserIdentity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec.User == nil {
		return UserIdentity{}, false, nil
	}
	return *s.rec.User, true, nil
}

func (s *MemoryStore) SetUser(_ context.Context, value UserIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.User = &value
	return nil
}

func (s *MemoryStore) GetShareID(_ context.Context) (team.ShareID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec.ShareID == nil {
		return "", false, nil
	}
	return *s.rec.ShareID, true, nil
}

func (s *MemoryStore) SetShareID(_ context.Context, value team.ShareID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.ShareID = &value
	return nil
}

func (s *MemoryStore) GetRootDocumentID(_ context.Context) (team.DocumentID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec.RootDocumentID == nil {
		return "", false, nil
	}
	return *s.rec.RootDocumentID, true, nil
}

func (s *MemoryStore) SetRootDocumentID(_ context.Context, value team.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.RootDocumentID = &value
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = Record{}
	return nil
}
