package game

import "math/rand"

// Role is a participant's hidden role for one play-through.
type Role string

const (
	RoleForensicScientist Role = "forensicScientist"
	RoleMurderer          Role = "murderer"
	RoleAccomplice        Role = "accomplice"
	RoleWitness           Role = "witness"
	RoleInvestigator      Role = "investigator"
)

// Player count bounds for a game of murder mystery.
const (
	MinParticipants = 4
	MaxParticipants = 12
)

// HandSize is the number of cards dealt per participant from each deck.
const HandSize = 4

// roleCounts is one row of the curated distribution table.
type roleCounts struct {
	scientists    int
	murderers     int
	accomplices   int
	witnesses     int
	investigators int
}

// roleTable maps player count to role counts. These are hand-tuned for
// balance, not derived from a formula.
var roleTable = map[int]roleCounts{
	4:  {1, 1, 0, 0, 2},
	5:  {1, 1, 0, 0, 3},
	6:  {1, 1, 1, 0, 3},
	7:  {1, 1, 1, 1, 3},
	8:  {1, 1, 1, 1, 4},
	9:  {1, 1, 1, 1, 5},
	10: {1, 1, 1, 1, 6},
	11: {1, 1, 1, 1, 7},
	12: {1, 1, 1, 1, 8},
}

// RoleDistribution returns the fixed role counts for the given player count.
// The second return is false when the count is outside [4,12].
func RoleDistribution(playerCount int) (map[Role]int, bool) {
	counts, ok := roleTable[playerCount]
	if !ok {
		return nil, false
	}
	return map[Role]int{
		RoleForensicScientist: counts.scientists,
		RoleMurderer:          counts.murderers,
		RoleAccomplice:        counts.accomplices,
		RoleWitness:           counts.witnesses,
		RoleInvestigator:      counts.investigators,
	}, true
}

// rolesFor flattens the table row for playerCount into a shuffled list of
// exactly playerCount roles. The caller has already validated the count.
func rolesFor(playerCount int) []Role {
	counts := roleTable[playerCount]
	roles := make([]Role, 0, playerCount)
	for role, n := range map[Role]int{
		RoleForensicScientist: counts.scientists,
		RoleMurderer:          counts.murderers,
		RoleAccomplice:        counts.accomplices,
		RoleWitness:           counts.witnesses,
		RoleInvestigator:      counts.investigators,
	} {
		for i := 0; i < n; i++ {
			roles = append(roles, role)
		}
	}
	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles
}

// assignRoles writes a shuffled role onto each participant in place and deals
// both private hands: each deck is sliced into contiguous chunks of HandSize
// in participant order, so no card is ever dealt twice.
func assignRoles(participants []Participant, evidenceDeck, methodDeck []Card) {
	roles := rolesFor(len(participants))
	for i := range participants {
		participants[i].Role = roles[i]
		participants[i].Evidence = append([]Card(nil), evidenceDeck[i*HandSize:(i+1)*HandSize]...)
		participants[i].Methods = append([]Card(nil), methodDeck[i*HandSize:(i+1)*HandSize]...)
	}
}
