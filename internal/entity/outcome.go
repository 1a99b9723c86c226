package entity

type OutcomeKind string

const (
	OutcomeOngoing OutcomeKind = "ongoing"
	OutcomeWin     OutcomeKind = "win"
	OutcomeDraw    OutcomeKind = "draw"
)

// Outcome is derived from a Board on demand and never stored in it.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Cell        `json:"winner,omitempty"`
}

func (that Outcome) IsTerminal() bool {
	return that.Kind != OutcomeOngoing
}
