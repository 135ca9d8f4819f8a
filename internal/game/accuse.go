package game

import "time"

// Accuse records one participant's single permitted guess at the solution.
// The claimed cards must actually be in the target's dealt hand, which lets
// players bluff with real-but-wrong cards. A correct accusation ends the game
// for the investigators immediately; once every eligible accuser has missed,
// the murderer wins instead.
func (s Session) Accuse(accuserID, targetID, evidenceID, methodID string, now time.Time) (Session, Accusation, error) {
	if s.Phase != PhaseDiscussion {
		return s, Accusation{}, ErrWrongPhase
	}
	accuser, ok := s.Participant(accuserID)
	if !ok {
		return s, Accusation{}, ErrUnknownParticipant
	}
	if accuser.Role == RoleForensicScientist {
		return s, Accusation{}, ErrScientistAccuse
	}
	if accuser.AccusationUsed {
		return s, Accusation{}, ErrAccusationSpent
	}
	target, ok := s.Participant(targetID)
	if !ok {
		return s, Accusation{}, ErrUnknownTarget
	}
	if !target.HasEvidence(evidenceID) || !target.HasMethod(methodID) {
		return s, Accusation{}, ErrForeignCards
	}

	accusation := Accusation{
		AccuserID:    accuser.ID,
		AccuserName:  accuser.Name,
		TargetID:     target.ID,
		TargetName:   target.Name,
		EvidenceID:   evidenceID,
		EvidenceName: cardName(target.Evidence, evidenceID),
		MethodID:     methodID,
		MethodName:   cardName(target.Methods, methodID),
		IsCorrect:    s.Solution.Matches(targetID, evidenceID, methodID),
		At:           now,
	}

	next := s.Clone()
	next.participant(accuserID).AccusationUsed = true
	next.currentRound().Accusations = append(next.currentRound().Accusations, accusation)
	next.Accusations = append(next.Accusations, accusation)

	switch {
	case accusation.IsCorrect:
		next.Phase = PhaseFinished
		next.Winner = WinnerInvestigators
		next.EndReason = ReasonCorrectAccusation
	case next.allAccusersExhausted():
		next.Phase = PhaseFinished
		next.Winner = WinnerMurderer
		next.EndReason = ReasonAllAccusedWrong
	}
	next.UpdatedAt = now
	return next, accusation, nil
}

// Matches reports strict equality against all three solution fields. No
// partial credit.
func (sol *Solution) Matches(targetID, evidenceID, methodID string) bool {
	if sol == nil {
		return false
	}
	return sol.MurdererID == targetID &&
		sol.EvidenceID == evidenceID &&
		sol.MethodID == methodID
}

// allAccusersExhausted reports whether every participant who is allowed to
// accuse has spent their single accusation. The scientist, murderer and
// accomplice are not counted: they either may not accuse or have no reason to.
func (s *Session) allAccusersExhausted() bool {
	for _, p := range s.Participants {
		switch p.Role {
		case RoleForensicScientist, RoleMurderer, RoleAccomplice:
			continue
		}
		if !p.AccusationUsed {
			return false
		}
	}
	return true
}
