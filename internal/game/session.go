package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxRounds is the number of clue-giving rounds before the murderer wins by
// running out the clock.
const MaxRounds = 3

// Winner values for a finished session.
const (
	WinnerInvestigators = "investigators"
	WinnerMurderer      = "murderer"
)

// End reasons for a finished session.
const (
	ReasonCorrectAccusation = "correct accusation"
	ReasonRoundsExhausted   = "rounds exhausted"
	ReasonAllAccusedWrong   = "all investigators failed"
)

// Card is an immutable catalog entry: one piece of evidence or one murder
// method.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TileKind distinguishes the fixed tiles from the replaceable scene tiles.
type TileKind string

const (
	TileScene        TileKind = "scene"
	TileCauseOfDeath TileKind = "causeOfDeath"
	TileLocation     TileKind = "location"
)

// Tile is a shared clue marker. The forensic scientist points at one of its
// options; once locked the selection is immutable until the tile is replaced.
type Tile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     TileKind `json:"kind"`
	Options  []string `json:"options"`
	Selected *int     `json:"selectedOption"`
	Locked   bool     `json:"locked"`
}

// Participant is one connected player. The device token enables silent
// reconnection and is never shown to other players.
type Participant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DeviceToken    string    `json:"-"`
	Role           Role      `json:"role,omitempty"`
	Evidence       []Card    `json:"evidence,omitempty"`
	Methods        []Card    `json:"methods,omitempty"`
	AccusationUsed bool      `json:"accusationUsed"`
	IsHost         bool      `json:"isHost"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// HasEvidence reports whether the card id is in the participant's dealt
// evidence hand.
func (p Participant) HasEvidence(id string) bool {
	for _, c := range p.Evidence {
		if c.ID == id {
			return true
		}
	}
	return false
}

// HasMethod reports whether the card id is in the participant's dealt method
// hand.
func (p Participant) HasMethod(id string) bool {
	for _, c := range p.Methods {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Solution is the hidden ground truth investigators must match exactly.
type Solution struct {
	MurdererID   string `json:"murdererId"`
	EvidenceID   string `json:"evidenceId"`
	EvidenceName string `json:"evidenceName"`
	MethodID     string `json:"methodId"`
	MethodName   string `json:"methodName"`
}

// Accusation is a permanently recorded guess at the solution.
type Accusation struct {
	AccuserID    string    `json:"accuserId"`
	AccuserName  string    `json:"accuserName"`
	TargetID     string    `json:"targetId"`
	TargetName   string    `json:"targetName"`
	EvidenceID   string    `json:"evidenceId"`
	EvidenceName string    `json:"evidenceName"`
	MethodID     string    `json:"methodId"`
	MethodName   string    `json:"methodName"`
	IsCorrect    bool      `json:"isCorrect"`
	At           time.Time `json:"at"`
}

// Round is one clue-giving/discussion cycle. Rounds are append-only; only the
// last element of the log is ever amended, and only its replaced-tile id and
// end timestamp.
type Round struct {
	Number         int          `json:"number"`
	TileIDs        []string     `json:"tileIds"`
	ReplacedTileID string       `json:"replacedTileId,omitempty"`
	Accusations    []Accusation `json:"accusations"`
	StartedAt      time.Time    `json:"startedAt"`
	EndedAt        time.Time    `json:"endedAt,omitempty"`
}

// Session is one room's complete state for one play-through. It is a value:
// every transition deep-copies it and returns the successor, leaving the
// original untouched.
type Session struct {
	Code             string        `json:"roomCode"`
	Phase            Phase         `json:"phase"`
	Participants     []Participant `json:"participants"`
	Solution         *Solution     `json:"solution,omitempty"`
	Tiles            []Tile        `json:"tiles"`
	TilePool         []Tile        `json:"tilePool,omitempty"`
	Round            int           `json:"round"`
	Rounds           []Round       `json:"rounds"`
	Accusations      []Accusation  `json:"accusations"`
	Winner           string        `json:"winner,omitempty"`
	EndReason        string        `json:"endReason,omitempty"`
	DiscussionEndsAt time.Time     `json:"discussionEndsAt,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// NewSession creates an empty session in the lobby phase. The first player to
// join becomes the host.
func NewSession(code string, now time.Time) Session {
	return Session{
		Code:      code,
		Phase:     PhaseLobby,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the session. Transitions clone first and
// mutate only the copy, so a failed guard can return the original unchanged.
func (s Session) Clone() Session {
	c := s
	c.Participants = make([]Participant, len(s.Participants))
	for i, p := range s.Participants {
		cp := p
		cp.Evidence = append([]Card(nil), p.Evidence...)
		cp.Methods = append([]Card(nil), p.Methods...)
		c.Participants[i] = cp
	}
	c.Tiles = cloneTiles(s.Tiles)
	c.TilePool = cloneTiles(s.TilePool)
	c.Rounds = cloneRounds(s.Rounds)
	c.Accusations = append([]Accusation(nil), s.Accusations...)
	if s.Solution != nil {
		sol := *s.Solution
		c.Solution = &sol
	}
	return c
}

func cloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	for i, t := range tiles {
		ct := t
		ct.Options = append([]string(nil), t.Options...)
		if t.Selected != nil {
			sel := *t.Selected
			ct.Selected = &sel
		}
		out[i] = ct
	}
	return out
}

// participant returns a pointer into s.Participants, or nil. Callers must
// only use it on a clone they own.
func (s *Session) participant(id string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return &s.Participants[i]
		}
	}
	return nil
}

// Participant looks up a participant by id.
func (s Session) Participant(id string) (Participant, bool) {
	for _, p := range s.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Host returns the session's host.
func (s Session) Host() (Participant, bool) {
	for _, p := range s.Participants {
		if p.IsHost {
			return p, true
		}
	}
	return Participant{}, false
}

// currentRound returns a pointer to the last element of the round log.
// Callers must only use it on a clone they own.
func (s *Session) currentRound() *Round {
	if len(s.Rounds) == 0 {
		return nil
	}
	return &s.Rounds[len(s.Rounds)-1]
}

// Join admits a new participant. Admission is open only while the session is
// in the lobby; the first participant to join becomes the host.
func (s Session) Join(name string, now time.Time) (Session, Participant, error) {
	if s.Phase != PhaseLobby {
		return s, Participant{}, ErrGameInProgress
	}
	if len(s.Participants) >= MaxParticipants {
		return s, Participant{}, ErrRoomFull
	}
	for _, p := range s.Participants {
		if strings.EqualFold(p.Name, name) {
			return s, Participant{}, ErrDuplicateName
		}
	}

	next := s.Clone()
	p := Participant{
		ID:          uuid.NewString(),
		Name:        name,
		DeviceToken: uuid.NewString(),
		IsHost:      len(next.Participants) == 0,
		JoinedAt:    now,
	}
	next.Participants = append(next.Participants, p)
	next.UpdatedAt = now
	return next, p, nil
}

// Rejoin reconnects a returning device. Matching is by device token first,
// then by case-insensitive name; a fresh participant is created only when
// neither matches and the session is still in the lobby. Rejoining is
// idempotent in any phase.
func (s Session) Rejoin(deviceToken, name string, now time.Time) (Session, Participant, error) {
	if deviceToken != "" {
		for _, p := range s.Participants {
			if p.DeviceToken == deviceToken {
				return s, p, nil
			}
		}
	}
	if name != "" {
		for i, p := range s.Participants {
			if strings.EqualFold(p.Name, name) {
				if deviceToken == "" || p.DeviceToken == deviceToken {
					return s, p, nil
				}
				// Same name from a new device: adopt the new token.
				next := s.Clone()
				next.Participants[i].DeviceToken = deviceToken
				next.UpdatedAt = now
				return next, next.Participants[i], nil
			}
		}
	}
	if name == "" {
		return s, Participant{}, ErrUnknownParticipant
	}
	return s.Join(name, now)
}
