package model

// Targeting strategy names
const (
	TargetingHunt   = "hunt"
	TargetingRandom = "random"
)

// TargetingDisplayName returns a human-readable label for a strategy
func TargetingDisplayName(strategy string) string {
	switch strategy {
	case TargetingHunt:
		return "Hunt"
	case TargetingRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidTargetingStrategies returns all valid targeting strategy names
func ValidTargetingStrategies() []string {
	return []string{TargetingHunt, TargetingRandom}
}
