// Package resonance implements the harmonic observation engine: a
// bounded log of ecosystem moments plus the analyses derived from it.
//
// Every recorded moment triggers a full re-analysis: pattern detection
// groups the log by concept, coupling analysis walks adjacent moments
// to link their sources, and harmonic detection lets co-occurring
// patterns amplify each other. State snapshots, synthesis suggestions,
// and the coupling graph are pure reads computed on demand; nothing is
// cached.
//
// The engine favors availability over strictness. Inputs are never
// validated, out-of-range scores are clamped where consumed, and
// degenerate states (empty log, no patterns) produce neutral outputs
// rather than errors. All timestamps are epoch milliseconds.
package resonance
