package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		ok       bool
	}{
		{PhaseLobby, PhaseRoleReveal, true},
		{PhaseRoleReveal, PhaseMurderSelection, true},
		{PhaseMurderSelection, PhaseClueGiving, true},
		{PhaseClueGiving, PhaseDiscussion, true},
		{PhaseDiscussion, PhaseClueGiving, true},
		{PhaseDiscussion, PhaseFinished, true},
		{PhaseLobby, PhaseDiscussion, false},
		{PhaseRoleReveal, PhaseLobby, false},
		{PhaseClueGiving, PhaseFinished, false},
		{PhaseFinished, PhaseRoleReveal, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
