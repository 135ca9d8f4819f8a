package game

// Phase is the current state of a session's top-level state machine.
type Phase string

const (
	PhaseLobby           Phase = "lobby"
	PhaseRoleReveal      Phase = "roleReveal"
	PhaseMurderSelection Phase = "murderSelection"
	PhaseClueGiving      Phase = "clueGiving"
	PhaseDiscussion      Phase = "discussion"
	PhaseFinished        Phase = "finished"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether a transition from p to target is valid.
// Reset (any phase back to lobby) is handled separately and is always allowed.
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:           {PhaseRoleReveal},
		PhaseRoleReveal:      {PhaseMurderSelection},
		PhaseMurderSelection: {PhaseClueGiving},
		PhaseClueGiving:      {PhaseDiscussion},
		PhaseDiscussion:      {PhaseClueGiving, PhaseFinished},
		PhaseFinished:        {},
	}

	for _, next := range validTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}
