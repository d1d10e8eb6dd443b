// Package markov models discrete- and continuous-time Markov processes for
// decision-analytic simulation.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - statespace.go: the validated frame shared by all models (dimension,
//     optional labels, StateRef resolution)
//   - jump.go / gillespie.go: single-entity jump processes over a probability
//     matrix (discrete time) or a rate matrix (continuous time)
//   - convert.go: the rate <-> probability conversions and OutRate
//   - cohort.go: aggregate-population simulation by multinomial apportionment
//
// # Randomness
//
// Every sampling call takes an explicit *rand.Rand; a nil source falls back
// to a fresh default-seeded one (see markov/randvar). Models are immutable
// after construction, so the supplied source is the only mutable state a
// call touches — give each concurrent run its own source, or serialize
// access to a shared one.
//
// # Errors
//
// Malformed inputs fail model construction with a *ConstructionError naming
// the offending row or label; invalid query arguments return a *UsageError.
// Sampling code never re-validates: inputs are enforced once at build time.
package markov
