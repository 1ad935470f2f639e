package types

// Origin classifies where a package's installed version came from.
type Origin string

const (
	OriginOfficial Origin = "official"
	OriginForeign  Origin = "foreign"
	OriginMissing  Origin = "missing"
	OriginUnknown  Origin = "unknown"
)

// RunState tracks the restoration executor through its lifecycle.
type RunState string

const (
	RunStatePlanned   RunState = "planned"
	RunStateConfirmed RunState = "confirmed"
	RunStateApplying  RunState = "applying"
	RunStateApplied   RunState = "applied"
	RunStateFailed    RunState = "failed"
)

// ActionOutcome records what happened to one planned action.
type ActionOutcome string

const (
	ActionOutcomePlanned   ActionOutcome = "planned"
	ActionOutcomeSimulated ActionOutcome = "simulated"
	ActionOutcomeApplied   ActionOutcome = "applied"
	ActionOutcomeFailed    ActionOutcome = "failed"
	ActionOutcomeSkipped   ActionOutcome = "skipped"
)

// SourceType distinguishes binary and source repository entries.
type SourceType string

const (
	SourceTypeDeb    SourceType = "deb"
	SourceTypeDebSrc SourceType = "deb-src"
)
