package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinAdmitsPlayersInLobby(t *testing.T) {
	s := NewSession("ABCD12", testNow)

	s, host, err := s.Join("alice", testNow)
	require.NoError(t, err)
	assert.True(t, host.IsHost, "first joiner becomes host")
	assert.NotEmpty(t, host.ID)
	assert.NotEmpty(t, host.DeviceToken)

	s, second, err := s.Join("bob", testNow)
	require.NoError(t, err)
	assert.False(t, second.IsHost)
	assert.Len(t, s.Participants, 2)
}

func TestJoinRejectsDuplicateNames(t *testing.T) {
	s := newLobby(t, 2)
	_, _, err := s.Join("PLAYER1", testNow)
	assert.ErrorIs(t, err, ErrDuplicateName, "name match is case-insensitive")
}

func TestJoinRejectsWhenRoomFull(t *testing.T) {
	s := newLobby(t, MaxParticipants)
	_, _, err := s.Join("extra", testNow)
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestJoinRejectedOutsideLobby(t *testing.T) {
	s := startedGame(t, 4)
	_, _, err := s.Join("latecomer", testNow)
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestRejoinByDeviceTokenIsIdempotent(t *testing.T) {
	s := startedGame(t, 4)
	original := s.Participants[2]

	next, p, err := s.Rejoin(original.DeviceToken, "", testNow)
	require.NoError(t, err)
	assert.Equal(t, original.ID, p.ID)
	assert.Len(t, next.Participants, 4, "rejoin must not create a participant")
}

func TestRejoinByNameWorksMidGame(t *testing.T) {
	s := startedGame(t, 4)
	original := s.Participants[1]

	_, p, err := s.Rejoin("", original.Name, testNow)
	require.NoError(t, err)
	assert.Equal(t, original.ID, p.ID)
}

func TestRejoinByNameAdoptsNewDeviceToken(t *testing.T) {
	s := startedGame(t, 4)
	original := s.Participants[1]

	next, p, err := s.Rejoin("fresh-token", original.Name, testNow)
	require.NoError(t, err)
	assert.Equal(t, original.ID, p.ID)
	assert.Equal(t, "fresh-token", p.DeviceToken)

	stored, ok := next.Participant(original.ID)
	require.True(t, ok)
	assert.Equal(t, "fresh-token", stored.DeviceToken)
}

func TestRejoinUnknownNameCreatesParticipantOnlyInLobby(t *testing.T) {
	lobby := newLobby(t, 4)
	next, p, err := lobby.Rejoin("", "newcomer", testNow)
	require.NoError(t, err)
	assert.Len(t, next.Participants, 5)
	assert.Equal(t, "newcomer", p.Name)

	started := startedGame(t, 4)
	_, _, err = started.Rejoin("", "stranger", testNow)
	assert.ErrorIs(t, err, ErrGameInProgress)
}

func TestCloneIsDeep(t *testing.T) {
	s := clueGivingGame(t, 6)
	clone := s.Clone()

	clone.Participants[0].Name = "mutated"
	clone.Participants[0].Evidence[0] = Card{ID: "X", Name: "X"}
	clone.Tiles[0].Locked = true
	sel := 3
	clone.Tiles[0].Selected = &sel
	clone.Rounds[0].TileIDs[0] = "mutated"
	clone.Solution.EvidenceID = "mutated"

	assert.NotEqual(t, "mutated", s.Participants[0].Name)
	assert.NotEqual(t, "X", s.Participants[0].Evidence[0].ID)
	assert.False(t, s.Tiles[0].Locked)
	assert.Nil(t, s.Tiles[0].Selected)
	assert.NotEqual(t, "mutated", s.Rounds[0].TileIDs[0])
	assert.NotEqual(t, "mutated", s.Solution.EvidenceID)
}

func TestFailedGuardLeavesSessionUnchanged(t *testing.T) {
	s := newLobby(t, 3)
	before := fmt.Sprintf("%+v", s)

	_, err := s.Start(stubCatalog{}, testNow)
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, before, fmt.Sprintf("%+v", s))
}
