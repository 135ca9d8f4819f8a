package game

import "time"

// ParticipantView is one participant as a particular viewer is allowed to see
// them. Role is nil and hands are empty unless a masking rule reveals them.
type ParticipantView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Role           *Role     `json:"role"`
	Evidence       []Card    `json:"evidence,omitempty"`
	Methods        []Card    `json:"methods,omitempty"`
	AccusationUsed bool      `json:"accusationUsed"`
	IsHost         bool      `json:"isHost"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// View is the redacted, per-viewer copy of a session. It is the only shape
// ever returned to a caller.
type View struct {
	Code             string            `json:"roomCode"`
	Phase            Phase             `json:"phase"`
	ViewerID         string            `json:"viewerId,omitempty"`
	Participants     []ParticipantView `json:"participants"`
	Solution         *Solution         `json:"solution,omitempty"`
	Tiles            []Tile            `json:"tiles"`
	TilePool         []Tile            `json:"tilePool,omitempty"`
	Round            int               `json:"round"`
	MaxRounds        int               `json:"maxRounds"`
	Rounds           []Round           `json:"rounds"`
	Accusations      []Accusation      `json:"accusations"`
	Winner           string            `json:"winner,omitempty"`
	EndReason        string            `json:"endReason,omitempty"`
	DiscussionEndsAt time.Time         `json:"discussionEndsAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Project computes the redacted copy of the session for the given viewer.
// viewerID may be empty or unknown, in which case the viewer is treated as a
// spectator and sees only public state. Every masking rule lives here; no
// other code path strips fields.
func Project(s Session, viewerID string) View {
	finished := s.Phase == PhaseFinished
	viewer, _ := s.Participant(viewerID)

	v := View{
		Code:             s.Code,
		Phase:            s.Phase,
		ViewerID:         viewer.ID,
		Tiles:            cloneTiles(s.Tiles),
		Round:            s.Round,
		MaxRounds:        MaxRounds,
		Rounds:           cloneRounds(s.Rounds),
		Accusations:      append([]Accusation(nil), s.Accusations...),
		Winner:           s.Winner,
		EndReason:        s.EndReason,
		DiscussionEndsAt: s.DiscussionEndsAt,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	// The solution is open knowledge once the game ends; before that only
	// the murder side and the scientist carry it.
	if s.Solution != nil {
		switch {
		case finished, knowsSolution(viewer.Role):
			sol := *s.Solution
			v.Solution = &sol
		}
	}

	// The unused pool is scientist-only: anyone else could card-count the
	// remaining tiles.
	if viewer.Role == RoleForensicScientist {
		v.TilePool = cloneTiles(s.TilePool)
	}

	v.Participants = make([]ParticipantView, len(s.Participants))
	for i, p := range s.Participants {
		pv := ParticipantView{
			ID:             p.ID,
			Name:           p.Name,
			AccusationUsed: p.AccusationUsed,
			IsHost:         p.IsHost,
			JoinedAt:       p.JoinedAt,
		}
		switch {
		case p.ID == viewer.ID:
			// Own record is never redacted.
			pv.Role = roleOrNil(p.Role)
			pv.Evidence = append([]Card(nil), p.Evidence...)
			pv.Methods = append([]Card(nil), p.Methods...)
		case finished:
			pv.Role = roleOrNil(p.Role)
		case roleVisible(viewer.Role, p.Role):
			pv.Role = roleOrNil(p.Role)
		}
		v.Participants[i] = pv
	}
	return v
}

func knowsSolution(r Role) bool {
	switch r {
	case RoleForensicScientist, RoleMurderer, RoleAccomplice:
		return true
	}
	return false
}

// roleVisible reports whether viewer may see subject's role before the game
// ends. Murderer and accomplice know each other; the witness recognises both
// of them, but they never learn who the witness is.
func roleVisible(viewer, subject Role) bool {
	switch viewer {
	case RoleMurderer:
		return subject == RoleAccomplice
	case RoleAccomplice:
		return subject == RoleMurderer
	case RoleWitness:
		return subject == RoleMurderer || subject == RoleAccomplice
	}
	return false
}

func roleOrNil(r Role) *Role {
	if r == "" {
		return nil
	}
	return &r
}

func cloneRounds(rounds []Round) []Round {
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		cr := r
		cr.TileIDs = append([]string(nil), r.TileIDs...)
		cr.Accusations = append([]Accusation(nil), r.Accusations...)
		out[i] = cr
	}
	return out
}
