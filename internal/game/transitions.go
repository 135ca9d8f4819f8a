package game

import (
	"math/rand"
	"time"
)

// SceneTileCount is the number of scene tiles drawn when the murder is
// selected, alongside the fixed cause-of-death and location tiles.
const SceneTileCount = 4

// Catalog supplies shuffled decks and clue tiles. Implemented by
// internal/catalog; tests plug in fixtures.
type Catalog interface {
	ShuffledEvidenceDeck() []Card
	ShuffledMethodDeck() []Card
	RandomSceneTiles(n int, excludeIDs []string) []Tile
	CauseOfDeathTile() Tile
	LocationTile() Tile
	AllTiles() []Tile
}

// Start moves the session from the lobby into role reveal: roles are drawn
// from the fixed distribution table and both private hands are dealt. Decks
// are sized to the table (4 cards per participant each), so the catalog's
// shuffled decks are consumed from the top.
func (s Session) Start(cat Catalog, now time.Time) (Session, error) {
	if !s.Phase.CanTransitionTo(PhaseRoleReveal) {
		return s, ErrWrongPhase
	}
	if len(s.Participants) < MinParticipants {
		return s, ErrNotEnoughPlayers
	}
	if len(s.Participants) > MaxParticipants {
		return s, ErrTooManyPlayers
	}

	next := s.Clone()
	assignRoles(next.Participants, cat.ShuffledEvidenceDeck(), cat.ShuffledMethodDeck())
	next.Phase = PhaseRoleReveal
	next.UpdatedAt = now
	return next, nil
}

// Proceed acknowledges the role reveal and hands the session to the murderer
// for solution selection. Any participant may trigger it; the client decides
// when everyone has seen their role.
func (s Session) Proceed(now time.Time) (Session, error) {
	if !s.Phase.CanTransitionTo(PhaseMurderSelection) {
		return s, ErrWrongPhase
	}
	next := s.Clone()
	next.Phase = PhaseMurderSelection
	next.UpdatedAt = now
	return next, nil
}

// SelectSolution records the murderer's choice of evidence and method, both
// of which must come from the murderer's own dealt hand. On success the clue
// board opens: four scene tiles plus the fixed cause-of-death and location
// tiles become active, the remaining scene tiles form the replacement pool,
// and round 1 begins.
func (s Session) SelectSolution(actorID, evidenceID, methodID string, cat Catalog, now time.Time) (Session, error) {
	if s.Phase != PhaseMurderSelection {
		return s, ErrWrongPhase
	}
	actor, ok := s.Participant(actorID)
	if !ok {
		return s, ErrUnknownParticipant
	}
	if actor.Role != RoleMurderer {
		return s, ErrNotMurderer
	}
	if !actor.HasEvidence(evidenceID) || !actor.HasMethod(methodID) {
		return s, ErrCardNotInHand
	}

	next := s.Clone()
	next.Solution = &Solution{
		MurdererID:   actor.ID,
		EvidenceID:   evidenceID,
		EvidenceName: cardName(actor.Evidence, evidenceID),
		MethodID:     methodID,
		MethodName:   cardName(actor.Methods, methodID),
	}

	scene := cat.RandomSceneTiles(SceneTileCount, nil)
	next.Tiles = append(scene, cat.CauseOfDeathTile(), cat.LocationTile())
	next.TilePool = poolAfterDraw(cat, next.Tiles)

	next.Round = 1
	next.Rounds = []Round{{
		Number:    1,
		TileIDs:   tileIDs(next.Tiles),
		StartedAt: now,
	}}
	next.Phase = PhaseClueGiving
	next.UpdatedAt = now
	return next, nil
}

// SelectTileOption points an active tile at one of its options. Only the
// forensic scientist may do this, and only while the tile is unlocked;
// touching a locked tile is a deliberate no-op.
func (s Session) SelectTileOption(actorID, tileID string, option int, now time.Time) (Session, error) {
	if s.Phase != PhaseClueGiving {
		return s, ErrWrongPhase
	}
	actor, ok := s.Participant(actorID)
	if !ok {
		return s, ErrUnknownParticipant
	}
	if actor.Role != RoleForensicScientist {
		return s, ErrNotScientist
	}

	next := s.Clone()
	tile := next.tile(tileID)
	if tile == nil {
		return s, ErrUnknownTile
	}
	if option < 0 || option >= len(tile.Options) {
		return s, ErrInvalidOption
	}
	if tile.Locked {
		return s, nil
	}
	tile.Selected = &option
	next.UpdatedAt = now
	return next, nil
}

// ReplaceSceneTile swaps one active scene tile for the next tile in the pool.
// Allowed from round 2 onward and at most once per round. Replacement is the
// one way past a confirmed board: the displaced tile returns to the pool with
// its selection and lock cleared, and the drawn tile arrives unlocked and
// pointable.
func (s Session) ReplaceSceneTile(actorID, tileID string, now time.Time) (Session, error) {
	if s.Phase != PhaseClueGiving {
		return s, ErrWrongPhase
	}
	actor, ok := s.Participant(actorID)
	if !ok {
		return s, ErrUnknownParticipant
	}
	if actor.Role != RoleForensicScientist {
		return s, ErrNotScientist
	}
	if s.Round < 2 {
		return s, ErrReplaceTooEarly
	}

	next := s.Clone()
	round := next.currentRound()
	if round.ReplacedTileID != "" {
		return s, ErrReplaceSpent
	}
	tile := next.tile(tileID)
	if tile == nil {
		return s, ErrUnknownTile
	}
	if tile.Kind != TileScene {
		return s, ErrFixedTile
	}
	if len(next.TilePool) == 0 {
		return s, ErrTilePoolEmpty
	}

	displaced := *tile
	displaced.Selected = nil
	displaced.Locked = false

	drawn := next.TilePool[0]
	next.TilePool = append(next.TilePool[1:], displaced)
	*tile = drawn

	round.ReplacedTileID = displaced.ID
	round.TileIDs = append(round.TileIDs, drawn.ID)
	next.UpdatedAt = now
	return next, nil
}

// ConfirmClues locks every active tile and opens the discussion. The
// discussion deadline is advisory: it is stored and surfaced to viewers, but
// no transition checks it.
func (s Session) ConfirmClues(actorID string, discussionWindow time.Duration, now time.Time) (Session, error) {
	if !s.Phase.CanTransitionTo(PhaseDiscussion) {
		return s, ErrWrongPhase
	}
	actor, ok := s.Participant(actorID)
	if !ok {
		return s, ErrUnknownParticipant
	}
	if actor.Role != RoleForensicScientist {
		return s, ErrNotScientist
	}

	next := s.Clone()
	for i := range next.Tiles {
		next.Tiles[i].Locked = true
	}
	next.DiscussionEndsAt = now.Add(discussionWindow)
	next.Phase = PhaseDiscussion
	next.UpdatedAt = now
	return next, nil
}

// NextRound closes the current discussion. After the final round the murderer
// wins by exhaustion; otherwise the next clue-giving round opens with the
// existing tiles still locked until a fresh confirm.
func (s Session) NextRound(actorID string, now time.Time) (Session, error) {
	if s.Phase != PhaseDiscussion {
		return s, ErrWrongPhase
	}
	actor, ok := s.Participant(actorID)
	if !ok {
		return s, ErrUnknownParticipant
	}
	if actor.Role != RoleForensicScientist {
		return s, ErrNotScientist
	}

	next := s.Clone()
	next.currentRound().EndedAt = now
	if next.Round >= MaxRounds {
		next.Phase = PhaseFinished
		next.Winner = WinnerMurderer
		next.EndReason = ReasonRoundsExhausted
		next.UpdatedAt = now
		return next, nil
	}
	next.Round++
	next.Rounds = append(next.Rounds, Round{
		Number:    next.Round,
		TileIDs:   tileIDs(next.Tiles),
		StartedAt: now,
	})
	next.Phase = PhaseClueGiving
	next.UpdatedAt = now
	return next, nil
}

// Reset returns the session to the lobby for another play-through. Host only.
// Participants and the host flag survive; roles, hands, the solution, tiles,
// rounds and accusations are all wiped.
func (s Session) Reset(actorID string, now time.Time) (Session, error) {
	actor, ok := s.Participant(actorID)
	if !ok {
		return s, ErrUnknownParticipant
	}
	if !actor.IsHost {
		return s, ErrNotHost
	}

	next := s.Clone()
	for i := range next.Participants {
		next.Participants[i].Role = ""
		next.Participants[i].Evidence = nil
		next.Participants[i].Methods = nil
		next.Participants[i].AccusationUsed = false
	}
	next.Solution = nil
	next.Tiles = nil
	next.TilePool = nil
	next.Round = 0
	next.Rounds = nil
	next.Accusations = nil
	next.Winner = ""
	next.EndReason = ""
	next.DiscussionEndsAt = time.Time{}
	next.Phase = PhaseLobby
	next.UpdatedAt = now
	return next, nil
}

// tile returns a pointer to the active tile with the given id, or nil.
// Callers must only use it on a clone they own.
func (s *Session) tile(id string) *Tile {
	for i := range s.Tiles {
		if s.Tiles[i].ID == id {
			return &s.Tiles[i]
		}
	}
	return nil
}

func tileIDs(tiles []Tile) []string {
	ids := make([]string, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	return ids
}

func cardName(hand []Card, id string) string {
	for _, c := range hand {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// poolAfterDraw builds the replacement pool: every scene tile the catalog
// knows about minus the ones already on the board, shuffled.
func poolAfterDraw(cat Catalog, active []Tile) []Tile {
	onBoard := make(map[string]bool, len(active))
	for _, t := range active {
		onBoard[t.ID] = true
	}
	var pool []Tile
	for _, t := range cat.AllTiles() {
		if t.Kind == TileScene && !onBoard[t.ID] {
			pool = append(pool, t)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool
}
