package config

// OutcomeID is the game outcome a collision maps to.
type OutcomeID int

const (
	OutcomeNone OutcomeID = iota
	OutcomePlayerHitGoal
	OutcomePlayerHitEnemy
	OutcomePlayerHitDanger
)

func (o OutcomeID) String() string {
	switch o {
	case OutcomePlayerHitGoal:
		return "player-hit-goal"
	case OutcomePlayerHitEnemy:
		return "player-hit-enemy"
	case OutcomePlayerHitDanger:
		return "player-hit-danger"
	}
	return "none"
}

// ContactID is the kind of body a contact force event involves.
type ContactID int

const (
	ContactNone ContactID = iota
	ContactPlayer
	ContactBlock
)
