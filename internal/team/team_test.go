package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CopiesState(t *testing.T) {
	state := State{
		Name:           "acme",
		RootKey:        []byte("root-key"),
		RootDocumentID: "doc-1",
		Servers:        []Server{{Host: "a.example.com"}},
	}
	tm := New(state)

	// Mutating the caller's value must not leak into the snapshot.
	state.Servers[0].Host = "evil.example.com"
	state.RootKey[0] = 'x'

	assert.True(t, HasServer(tm, "a.example.com"))
	assert.False(t, HasServer(tm, "evil.example.com"))
}

func TestState_ReturnsDeepCopy(t *testing.T) {
	tm := New(State{
		Name:           "acme",
		RootKey:        []byte("root-key"),
		RootDocumentID: "doc-1",
		Servers:        []Server{{Host: "a.example.com"}},
	})

	out := tm.State()
	out.Servers[0].Host = "evil.example.com"

	assert.True(t, HasServer(tm, "a.example.com"))
}

func TestDeriveShareID_Deterministic(t *testing.T) {
	a := New(State{Name: "one", RootKey: []byte("shared-root"), RootDocumentID: "doc-a"})
	b := New(State{Name: "two", RootKey: []byte("shared-root"), RootDocumentID: "doc-b"})

	// ShareID depends only on the root identity key.
	require.Equal(t, DeriveShareID(a), DeriveShareID(b))
	require.Len(t, string(DeriveShareID(a)), shareIDBytes*2)
}

func TestDeriveShareID_DistinctRoots(t *testing.T) {
	a := New(State{RootKey: []byte("root-a")})
	b := New(State{RootKey: []byte("root-b")})

	require.NotEqual(t, DeriveShareID(a), DeriveShareID(b))
}

func TestRootDocumentIDOf(t *testing.T) {
	tm := New(State{RootKey: []byte("k"), RootDocumentID: "doc-42"})
	assert.Equal(t, DocumentID("doc-42"), RootDocumentIDOf(tm))
}
