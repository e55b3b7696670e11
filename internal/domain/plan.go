package domain

// StepKind identifies what a plan step will do on the appliance.
type StepKind int

const (
	// NoOp means the existing rule already answers with the desired address.
	NoOp StepKind = iota
	// Create adds a rule for a hostname that has none.
	Create
	// DeleteThenCreate replaces a stale rule. AdGuard Home has no in-place
	// update for rewrites, and deleting requires the old answer, so the old
	// rule must be removed before the new one is added.
	DeleteThenCreate
)

// String returns a short human-readable name for the step kind.
func (k StepKind) String() string {
	switch k {
	case Create:
		return "create"
	case DeleteThenCreate:
		return "update"
	default:
		return "unchanged"
	}
}

// Step is one hostname's planned operation.
type Step struct {
	Kind     StepKind
	Hostname string
	// Answer is the address the hostname should resolve to.
	Answer string
	// OldAnswer is the stale address being replaced. Set only for
	// DeleteThenCreate, where the delete call needs it.
	OldAnswer string
}

// Plan is the ordered list of operations computed for one run. It exists
// only in memory for the lifetime of the run.
type Plan struct {
	// IP is the resolved local address every step targets.
	IP    string
	Steps []Step
}

// Mutations returns only the steps that would touch the appliance.
func (p *Plan) Mutations() []Step {
	var out []Step
	for _, s := range p.Steps {
		if s.Kind != NoOp {
			out = append(out, s)
		}
	}
	return out
}

// Counts tallies the plan's steps by kind.
func (p *Plan) Counts() (creates, updates, noops int) {
	for _, s := range p.Steps {
		switch s.Kind {
		case Create:
			creates++
		case DeleteThenCreate:
			updates++
		default:
			noops++
		}
	}
	return creates, updates, noops
}
