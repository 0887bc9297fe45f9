package component

// Enemy is a combatant walking a track.
type Enemy struct {
	DefID  string
	Bounty uint64 // money paid when killed
	Damage int    // base health lost when it leaks
	Dead   bool   // death already reported
}
