package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewOf(v View, id string) ParticipantView {
	for _, p := range v.Participants {
		if p.ID == id {
			return p
		}
	}
	return ParticipantView{}
}

func TestProjectOwnRecordIsNeverRedacted(t *testing.T) {
	s := clueGivingGame(t, 7)
	for _, p := range s.Participants {
		v := Project(s, p.ID)
		own := viewOf(v, p.ID)
		require.NotNil(t, own.Role, "viewer %s must see own role", p.Name)
		assert.Equal(t, p.Role, *own.Role)
		assert.Len(t, own.Evidence, HandSize)
		assert.Len(t, own.Methods, HandSize)
	}
}

func TestProjectHidesOtherHands(t *testing.T) {
	s := clueGivingGame(t, 7)
	viewer := s.Participants[0]
	v := Project(s, viewer.ID)
	for _, pv := range v.Participants {
		if pv.ID == viewer.ID {
			continue
		}
		assert.Empty(t, pv.Evidence, "hand of %s leaked", pv.Name)
		assert.Empty(t, pv.Methods, "hand of %s leaked", pv.Name)
	}
}

func TestProjectRoleVisibilityBeforeFinish(t *testing.T) {
	s := clueGivingGame(t, 7)
	murderer := findByRole(t, s, RoleMurderer)
	accomplice := findByRole(t, s, RoleAccomplice)
	witness := findByRole(t, s, RoleWitness)
	investigator := findAllByRole(s, RoleInvestigator)[0]

	// Murderer and accomplice see each other.
	mv := Project(s, murderer.ID)
	require.NotNil(t, viewOf(mv, accomplice.ID).Role)
	assert.Equal(t, RoleAccomplice, *viewOf(mv, accomplice.ID).Role)

	av := Project(s, accomplice.ID)
	require.NotNil(t, viewOf(av, murderer.ID).Role)
	assert.Equal(t, RoleMurderer, *viewOf(av, murderer.ID).Role)

	// The witness sees both, but stays invisible to them.
	wv := Project(s, witness.ID)
	require.NotNil(t, viewOf(wv, murderer.ID).Role)
	require.NotNil(t, viewOf(wv, accomplice.ID).Role)
	assert.Nil(t, viewOf(mv, witness.ID).Role, "murderer must not learn the witness")
	assert.Nil(t, viewOf(av, witness.ID).Role, "accomplice must not learn the witness")

	// An investigator sees nobody's role.
	iv := Project(s, investigator.ID)
	for _, pv := range iv.Participants {
		if pv.ID == investigator.ID {
			continue
		}
		assert.Nil(t, pv.Role, "investigator saw role of %s", pv.Name)
	}
}

func TestProjectRevealsEverythingWhenFinished(t *testing.T) {
	s := discussionGame(t, 7)
	murderer := findByRole(t, s, RoleMurderer)
	investigator := findAllByRole(s, RoleInvestigator)[0]

	s, _, err := s.Accuse(investigator.ID, murderer.ID, s.Solution.EvidenceID, s.Solution.MethodID, testNow)
	require.NoError(t, err)
	require.Equal(t, PhaseFinished, s.Phase)

	for _, viewer := range s.Participants {
		v := Project(s, viewer.ID)
		require.NotNil(t, v.Solution, "viewer %s", viewer.Name)
		for _, pv := range v.Participants {
			assert.NotNil(t, pv.Role, "viewer %s could not see role of %s", viewer.Name, pv.Name)
		}
	}
}

func TestProjectSolutionVisibility(t *testing.T) {
	s := clueGivingGame(t, 7)

	for _, p := range s.Participants {
		v := Project(s, p.ID)
		switch p.Role {
		case RoleForensicScientist, RoleMurderer, RoleAccomplice:
			assert.NotNil(t, v.Solution, "%s should see the solution", p.Role)
		default:
			assert.Nil(t, v.Solution, "%s must not see the solution", p.Role)
		}
	}
}

func TestProjectTilePoolIsScientistOnly(t *testing.T) {
	s := clueGivingGame(t, 7)
	require.NotEmpty(t, s.TilePool)

	for _, p := range s.Participants {
		v := Project(s, p.ID)
		assert.NotEmpty(t, v.Tiles, "active tiles are public")
		if p.Role == RoleForensicScientist {
			assert.NotEmpty(t, v.TilePool)
		} else {
			assert.Empty(t, v.TilePool, "%s can card-count the pool", p.Role)
		}
	}
}

func TestProjectSpectator(t *testing.T) {
	s := clueGivingGame(t, 7)

	for _, viewerID := range []string{"", "not-a-player"} {
		v := Project(s, viewerID)
		assert.Nil(t, v.Solution)
		assert.Empty(t, v.TilePool)
		for _, pv := range v.Participants {
			assert.Nil(t, pv.Role)
			assert.Empty(t, pv.Evidence)
		}
	}
}

func TestProjectIsACopy(t *testing.T) {
	s := clueGivingGame(t, 4)
	scientist := findByRole(t, s, RoleForensicScientist)
	v := Project(s, scientist.ID)

	v.Tiles[0].Locked = true
	v.TilePool[0].Options[0] = "mutated"
	assert.False(t, s.Tiles[0].Locked, "projection must not alias session tiles")
	assert.NotEqual(t, "mutated", s.TilePool[0].Options[0])
}

func TestProjectCarriesAdvisoryDeadline(t *testing.T) {
	s := discussionGame(t, 4)
	v := Project(s, "")
	assert.Equal(t, testNow.Add(5*time.Minute), v.DiscussionEndsAt)
}
