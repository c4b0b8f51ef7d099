package attach

import (
	"context"

	"github.com/yaegashi/tgwops/domain/model"
)

// Operator shows listings and collects answers from the person running the workflow.
type Operator interface {
	// Show displays a listing under a title.
	Show(ctx context.Context, title string, table model.Table) error
	// Ask prompts for one line of input. It returns model.ErrOperatorAbort
	// when input ends or ctx is cancelled while waiting.
	Ask(ctx context.Context, prompt string) (string, error)
	// Notify reports progress.
	Notify(ctx context.Context, msg string)
	// Warn reports a condition the operator must act on.
	Warn(ctx context.Context, msg string)
}

// UseCase wires the ports needed by the attach workflow.
type UseCase struct {
	Inventory model.InventoryPort
	Operator  Operator
	Renderer  model.DocumentRenderer
	Sink      model.DocumentSink
}

// Selection is the run-scoped record of everything resolved so far.
type Selection struct {
	SourceNetwork      model.Network     `json:"sourceNetwork"`
	Hub                model.Hub         `json:"hub"`
	SourceSubnets      []model.Subnet    `json:"sourceSubnets"`
	Attachment         *model.Attachment `json:"attachment,omitempty"`
	DestinationNetwork model.Network     `json:"destinationNetwork"`
	DestinationSubnet  model.Subnet      `json:"destinationSubnet"`
	RouteTable         model.RouteTable  `json:"routeTable"`
}

// SubnetIDs returns the IDs of the selected source subnets in selection order.
func (s *Selection) SubnetIDs() []string {
	ids := make([]string, 0, len(s.SourceSubnets))
	for _, sn := range s.SourceSubnets {
		ids = append(ids, sn.ID)
	}
	return ids
}

// Route returns the route derived from the selection.
// The destination CIDR is the destination subnet's block as listed.
func (s *Selection) Route() model.Route {
	return model.Route{
		RouteTableID:    s.RouteTable.ID,
		DestinationCIDR: s.DestinationSubnet.CIDR,
		HubID:           s.Hub.ID,
	}
}

// Document returns the input of the configuration document.
func (s *Selection) Document() model.RouteDocument {
	return model.RouteDocument{
		HubID:           s.Hub.ID,
		NetworkID:       s.SourceNetwork.ID,
		SubnetIDs:       s.SubnetIDs(),
		RouteTableID:    s.RouteTable.ID,
		DestinationCIDR: s.DestinationSubnet.CIDR,
	}
}

// RunOutput is the result of a completed workflow.
type RunOutput struct {
	Selection *Selection `json:"selection"`
	Path      string     `json:"path"`
	Document  []byte     `json:"-"`
}
