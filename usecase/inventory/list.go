package inventory

import (
	"context"
	"fmt"

	"github.com/yaegashi/tgwops/domain/model"
)

// ListInput holds input parameters for listing one inventory kind.
type ListInput struct {
	Kind      string `json:"kind"`
	NetworkID string `json:"network_id,omitempty"` // Required for subnets and route tables
}

// ListOutput holds one listing in both tabular and structured form.
type ListOutput struct {
	Kind  string      `json:"kind"`
	Table model.Table `json:"-"`
	Items any         `json:"items"`
}

// Kinds returns the kinds accepted by List, in display order.
func Kinds() []string {
	return []string{model.KindNetwork, model.KindHub, model.KindSubnet, model.KindRouteTable}
}

// List reads a single listing from the inventory.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is required")
	}
	if u.InventoryPort == nil {
		return nil, fmt.Errorf("inventory port is required")
	}
	switch in.Kind {
	case model.KindNetwork:
		l, err := u.InventoryPort.ListNetworks(ctx)
		if err != nil {
			return nil, err
		}
		return &ListOutput{Kind: in.Kind, Table: model.NetworkTable(l), Items: l.Items()}, nil
	case model.KindHub:
		l, err := u.InventoryPort.ListHubs(ctx)
		if err != nil {
			return nil, err
		}
		return &ListOutput{Kind: in.Kind, Table: model.HubTable(l), Items: l.Items()}, nil
	case model.KindSubnet:
		if in.NetworkID == "" {
			return nil, fmt.Errorf("network ID is required for %s", in.Kind)
		}
		l, err := u.InventoryPort.ListSubnets(ctx, in.NetworkID)
		if err != nil {
			return nil, err
		}
		return &ListOutput{Kind: in.Kind, Table: model.SubnetTable(l), Items: l.Items()}, nil
	case model.KindRouteTable:
		if in.NetworkID == "" {
			return nil, fmt.Errorf("network ID is required for %s", in.Kind)
		}
		l, err := u.InventoryPort.ListRouteTables(ctx, in.NetworkID)
		if err != nil {
			return nil, err
		}
		return &ListOutput{Kind: in.Kind, Table: model.RouteTableTable(l), Items: l.Items()}, nil
	default:
		return nil, fmt.Errorf("unknown inventory kind: %q (available: %v)", in.Kind, Kinds())
	}
}
