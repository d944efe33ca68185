package sim

// Random is the source of randomness consumed by the resolver, the outcome
// table and the direction policy. *math/rand.Rand satisfies it, so a seeded
// rand.New(rand.NewSource(seed)) makes a tick replayable.
type Random interface {
	Float64() float64
	Intn(n int) int
}
