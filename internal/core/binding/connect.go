package binding

import (
	"github.com/chongliujia/ragJ-platform-sub002/internal/core/catalog"
)

// Branch-selector conditions synthesized when a condition node's virtual
// true/false output is connected. The payload actually transmitted flows
// through the node's real passthrough port.
const (
	BranchTrueCondition  = "outcome == true"
	BranchFalseCondition = "outcome == false"

	// conditionPassthrough is the condition node's real data output.
	conditionPassthrough = "result"
)

// ConnectPlan is the resolved shape of a requested connection: the ports
// to record on the edge plus an optional synthesized guard condition.
type ConnectPlan struct {
	SourceOutput string
	TargetInput  string
	Condition    *string
}

// PlanConnect resolves a user's connect request into concrete edge
// fields. Virtual branch selectors on condition nodes become a guard
// condition on the edge; the generic input aliases canonicalize to the
// target kind's primary port. Everything else passes through untouched.
func PlanConnect(sourceKind catalog.Kind, sourceOutput string, targetKind catalog.Kind, targetInput string) ConnectPlan {
	plan := ConnectPlan{
		SourceOutput: sourceOutput,
		TargetInput:  CanonicalInput(targetKind, targetInput),
	}
	if sourceKind == catalog.KindCondition {
		switch sourceOutput {
		case "true":
			cond := BranchTrueCondition
			plan.SourceOutput = conditionPassthrough
			plan.Condition = &cond
		case "false":
			cond := BranchFalseCondition
			plan.SourceOutput = conditionPassthrough
			plan.Condition = &cond
		}
	}
	return plan
}
