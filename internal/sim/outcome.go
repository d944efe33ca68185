package sim

// Verdict is the outcome of one mover running into one settled obstacle.
type Verdict uint8

const (
	// CrasheeDestroyed removes the obstacle; the mover takes its cell.
	CrasheeDestroyed Verdict = iota + 1
	// MoverDestroyed removes the mover; the obstacle is untouched.
	MoverDestroyed
	// MoverChangesDirection keeps the mover in place with a new intent.
	MoverChangesDirection
)

// Redirect probabilities for the two randomized pairings. A draw below the
// threshold redirects the mover, anything else destroys it.
const (
	ShipMineRedirectChance       = 0.70
	MonsterMonsterRedirectChance = 0.80
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case CrasheeDestroyed:
		return "crashee-destroyed"
	case MoverDestroyed:
		return "mover-destroyed"
	case MoverChangesDirection:
		return "mover-changes-direction"
	default:
		return "unknown"
	}
}

// Decide maps a (mover, obstacle) pair to a verdict. Ship-vs-Mine and
// Monster-vs-Monster consume exactly one rnd.Float64 draw; every other pair
// is fixed. A mover that is not a Ship or Monster, or an obstacle outside the
// declared kinds, is an invariant violation.
func Decide(mover, obstacle Kind, rnd Random) (Verdict, error) {
	if !obstacle.Valid() {
		return 0, invariantf("outcome", "unknown obstacle kind %s", obstacle)
	}

	switch mover {
	case KindShip:
		switch obstacle {
		case KindIsland, KindShip:
			return MoverChangesDirection, nil
		case KindPlayer, KindHQ:
			return CrasheeDestroyed, nil
		case KindMine:
			return chance(rnd, ShipMineRedirectChance), nil
		case KindMonster:
			return MoverDestroyed, nil
		}
	case KindMonster:
		switch obstacle {
		case KindIsland:
			return MoverChangesDirection, nil
		case KindPlayer, KindHQ, KindShip:
			return CrasheeDestroyed, nil
		case KindMine:
			return MoverDestroyed, nil
		case KindMonster:
			return chance(rnd, MonsterMonsterRedirectChance), nil
		}
	}

	return 0, invariantf("outcome", "%s cannot move into %s", mover, obstacle)
}

func chance(rnd Random, redirect float64) Verdict {
	if rnd.Float64() < redirect {
		return MoverChangesDirection
	}
	return MoverDestroyed
}

// EndsGame reports whether destroying an entity of kind k ends the session.
func EndsGame(k Kind) bool {
	return k == KindPlayer || k == KindHQ
}
