package ai

import rand "math/rand/v2"

// Profile is one bot's personality: probabilities and sizing bounds
// drawn once at seat assignment from its archetype's ranges. The
// archetype fixes the ranges; the profile is the concrete draw.
type Profile struct {
	Archetype Archetype

	OpenRaiseProb float64
	ThreeBetProb  float64
	FourBetProb   float64
	RangeFuzzProb float64

	OpenRaiseSizeMin float64
	OpenRaiseSizeMax float64
	ThreeBetSizeMin  float64
	ThreeBetSizeMax  float64
	FourBetSizeMin   float64
	FourBetSizeMax   float64

	PostFlopFoldProb    float64
	PostFlopCallCeiling float64
	PostFlopCheckProb   float64

	BetSizePotFraction float64
	RaiseMultiplier    float64
}

func randBetween(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
