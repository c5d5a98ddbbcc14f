package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/crmsession/identity"
)

func TestSnapshot_Encode(t *testing.T) {
	user := &identity.Identity{ID: "1", Email: "a@b.com", FullName: "Ann", Role: identity.RoleAdmin,
		CreatedAt: identity.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
		UpdatedAt: identity.NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)),
	}
	var testCases = []struct {
		description string
		snapshot    *Snapshot
		expect      string
	}{
		{
			description: "empty",
			snapshot:    &Snapshot{},
			expect:      `{"state":{"token":null,"user":null},"version":0}`,
		},
		{
			description: "authenticated",
			snapshot:    &Snapshot{Credential: "abc", Identity: user},
			expect:      `{"state":{"token":"abc","user":{"id":"1","email":"a@b.com","full_name":"Ann","role":"admin","created_at":"2024-01-02T03:04:05Z","updated_at":"2024-01-02T03:04:05Z"}},"version":0}`,
		},
	}
	for _, testCase := range testCases {
		encoded, err := testCase.snapshot.Encode()
		require.Nil(t, err, testCase.description)
		assert.JSONEq(t, testCase.expect, encoded, testCase.description)

		decoded, err := DecodeSnapshot(encoded)
		require.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.snapshot, decoded, testCase.description)
	}
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := DecodeSnapshot("{")
	assert.NotNil(t, err)
	_, err = DecodeSnapshot(`{"state":{"token":"abc"},"version":3}`)
	assert.NotNil(t, err)
}

func TestNewSnapshot_ExcludesLoading(t *testing.T) {
	snapshot := NewSnapshot(Session{Credential: "abc", IsLoading: true, IsAuthenticated: true})
	encoded, err := snapshot.Encode()
	require.Nil(t, err)
	assert.NotContains(t, encoded, "Loading")
	assert.NotContains(t, encoded, "isAuthenticated")
}

func TestSession_State(t *testing.T) {
	var testCases = []struct {
		session Session
		expect  State
	}{
		{session: Session{}, expect: Unauthenticated},
		{session: Session{Credential: "abc"}, expect: HydratedUnverified},
		{session: Session{IsLoading: true}, expect: Authenticating},
		{session: Session{Credential: "abc", Identity: &identity.Identity{ID: "1"}, IsAuthenticated: true}, expect: Authenticated},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.session.State(), testCase.expect.String())
	}
	assert.Equal(t, identity.Role(""), Session{}.Role())
}
