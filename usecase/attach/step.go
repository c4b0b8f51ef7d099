package attach

import "fmt"

// Step is a state of the attach workflow. Steps only move forward.
type Step int

const (
	stepNone Step = iota - 1
	StepListSourceNetworks
	StepSelectSourceNetwork
	StepListHubs
	StepSelectHub
	StepListSourceSubnets
	StepSelectSourceSubnets
	StepCreateAttachment
	StepListDestinationNetworks
	StepSelectDestinationNetwork
	StepListDestinationSubnets
	StepSelectDestinationSubnet
	StepListSourceRouteTables
	StepSelectRouteTable
	StepCreateRoute
	StepSerialize
	StepDone
)

var stepNames = [...]string{
	"ListSourceNetworks",
	"SelectSourceNetwork",
	"ListHubs",
	"SelectHub",
	"ListSourceSubnets",
	"SelectSourceSubnets",
	"CreateAttachment",
	"ListDestinationNetworks",
	"SelectDestinationNetwork",
	"ListDestinationSubnets",
	"SelectDestinationSubnet",
	"ListSourceRouteTables",
	"SelectRouteTable",
	"CreateRoute",
	"Serialize",
	"Done",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// StepError reports the step at which a run stopped.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("step %s: %v", e.Step, e.Err) }

func (e *StepError) Unwrap() error { return e.Err }
