package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// stubCatalog returns deterministic, unshuffled decks so tests can reason
// about exact hands.
type stubCatalog struct{}

func (stubCatalog) ShuffledEvidenceDeck() []Card { return stubDeck("E", "Evidence", 48) }
func (stubCatalog) ShuffledMethodDeck() []Card   { return stubDeck("M", "Method", 48) }

func (stubCatalog) RandomSceneTiles(n int, excludeIDs []string) []Tile {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []Tile
	for i := 1; i <= 10 && len(out) < n; i++ {
		t := stubSceneTile(i)
		if !excluded[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func (stubCatalog) CauseOfDeathTile() Tile {
	return Tile{
		ID:      "cause",
		Name:    "Cause of Death",
		Kind:    TileCauseOfDeath,
		Options: []string{"Suffocation", "Severe Injury", "Loss of Blood", "Illness or Disease", "Poisoning", "Accident"},
	}
}

func (stubCatalog) LocationTile() Tile {
	return Tile{
		ID:      "location",
		Name:    "Location of Crime",
		Kind:    TileLocation,
		Options: []string{"Living Room", "Bedroom", "Bathroom", "Hotel", "Park", "Building Site"},
	}
}

func (c stubCatalog) AllTiles() []Tile {
	tiles := make([]Tile, 0, 12)
	for i := 1; i <= 10; i++ {
		tiles = append(tiles, stubSceneTile(i))
	}
	return append(tiles, c.CauseOfDeathTile(), c.LocationTile())
}

func stubDeck(prefix, name string, n int) []Card {
	deck := make([]Card, n)
	for i := range deck {
		deck[i] = Card{ID: fmt.Sprintf("%s%d", prefix, i+1), Name: fmt.Sprintf("%s %d", name, i+1)}
	}
	return deck
}

func stubSceneTile(i int) Tile {
	return Tile{
		ID:      fmt.Sprintf("T%d", i),
		Name:    fmt.Sprintf("Scene Tile %d", i),
		Kind:    TileScene,
		Options: []string{"A", "B", "C", "D", "E", "F"},
	}
}

// newLobby creates a session with n participants. The first one is the host.
func newLobby(t *testing.T, n int) Session {
	t.Helper()
	s := NewSession("TEST42", testNow)
	for i := 1; i <= n; i++ {
		var err error
		s, _, err = s.Join(fmt.Sprintf("player%d", i), testNow)
		require.NoError(t, err)
	}
	return s
}

// startedGame returns a session in roleReveal with roles and hands dealt.
func startedGame(t *testing.T, n int) Session {
	t.Helper()
	s, err := newLobby(t, n).Start(stubCatalog{}, testNow)
	require.NoError(t, err)
	return s
}

// clueGivingGame drives a session to clueGiving: the murderer has picked the
// first evidence and method card of their own hand.
func clueGivingGame(t *testing.T, n int) Session {
	t.Helper()
	s, err := startedGame(t, n).Proceed(testNow)
	require.NoError(t, err)
	murderer := findByRole(t, s, RoleMurderer)
	s, err = s.SelectSolution(murderer.ID, murderer.Evidence[0].ID, murderer.Methods[0].ID, stubCatalog{}, testNow)
	require.NoError(t, err)
	return s
}

// discussionGame drives a session into its first discussion.
func discussionGame(t *testing.T, n int) Session {
	t.Helper()
	s := clueGivingGame(t, n)
	scientist := findByRole(t, s, RoleForensicScientist)
	s, err := s.ConfirmClues(scientist.ID, 5*time.Minute, testNow)
	require.NoError(t, err)
	return s
}

func findByRole(t *testing.T, s Session, role Role) Participant {
	t.Helper()
	for _, p := range s.Participants {
		if p.Role == role {
			return p
		}
	}
	t.Fatalf("no participant with role %s", role)
	return Participant{}
}

func findAllByRole(s Session, role Role) []Participant {
	var out []Participant
	for _, p := range s.Participants {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}
