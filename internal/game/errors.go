package game

import "errors"

// Rule violations are expected outcomes, not failures; every transition
// returns one of these sentinels and leaves the session untouched. The
// strings are user-facing and stable.
var (
	ErrRoomFull           = errors.New("room is full")
	ErrGameInProgress     = errors.New("game has already started")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrTooManyPlayers     = errors.New("too many players to start")
	ErrDuplicateName      = errors.New("a player with that name already exists in the room")
	ErrWrongPhase         = errors.New("action not allowed in the current phase")
	ErrNotHost            = errors.New("only the host can do that")
	ErrNotMurderer        = errors.New("only the murderer can select the solution")
	ErrNotScientist       = errors.New("only the forensic scientist can do that")
	ErrUnknownParticipant = errors.New("participant not found")
	ErrUnknownTarget      = errors.New("accused player not found")
	ErrUnknownTile        = errors.New("tile not found")
	ErrInvalidOption      = errors.New("tile option out of range")
	ErrCardNotInHand      = errors.New("card is not in your hand")
	ErrForeignCards       = errors.New("claimed cards are not in the accused player's hand")
	ErrScientistAccuse    = errors.New("the forensic scientist cannot accuse")
	ErrAccusationSpent    = errors.New("you have already used your accusation")
	ErrFixedTile          = errors.New("only scene tiles can be replaced")
	ErrReplaceTooEarly    = errors.New("tiles cannot be replaced in the first round")
	ErrReplaceSpent       = errors.New("a tile has already been replaced this round")
	ErrTilePoolEmpty      = errors.New("no tiles left to draw")
)

var ruleViolations = []error{
	ErrRoomFull, ErrGameInProgress, ErrNotEnoughPlayers, ErrTooManyPlayers,
	ErrDuplicateName, ErrWrongPhase, ErrNotHost, ErrNotMurderer,
	ErrNotScientist, ErrUnknownParticipant, ErrUnknownTarget, ErrUnknownTile,
	ErrInvalidOption, ErrCardNotInHand, ErrForeignCards, ErrScientistAccuse,
	ErrAccusationSpent, ErrFixedTile, ErrReplaceTooEarly, ErrReplaceSpent,
	ErrTilePoolEmpty,
}

// IsRuleViolation reports whether err is one of the expected game-rule
// rejections, as opposed to an infrastructure failure.
func IsRuleViolation(err error) bool {
	for _, sentinel := range ruleViolations {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
