package providerdrv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaegashi/tgwops/domain/model"
)

// inventoryPortAdapter implements model.InventoryPort backed by a provider driver.
// It turns driver results into listings and rejects malformed entries.
type inventoryPortAdapter struct {
	driver Driver
}

func (a *inventoryPortAdapter) ListNetworks(ctx context.Context) (*model.Listing[model.Network], error) {
	items, err := a.driver.NetworkList(ctx)
	if err != nil {
		return nil, &model.LookupFailure{Kind: model.KindNetwork, Err: err}
	}
	out := make([]model.Network, 0, len(items))
	for i, n := range items {
		if n == nil || n.ID == "" || n.CIDR == "" {
			return nil, malformed(model.KindNetwork, i, "id and cidr are required")
		}
		out = append(out, *n)
	}
	return model.NewListing(model.KindNetwork, out), nil
}

func (a *inventoryPortAdapter) ListHubs(ctx context.Context) (*model.Listing[model.Hub], error) {
	items, err := a.driver.HubList(ctx)
	if err != nil {
		return nil, &model.LookupFailure{Kind: model.KindHub, Err: err}
	}
	out := make([]model.Hub, 0, len(items))
	for i, h := range items {
		if h == nil || h.ID == "" {
			return nil, malformed(model.KindHub, i, "id is required")
		}
		out = append(out, *h)
	}
	return model.NewListing(model.KindHub, out), nil
}

func (a *inventoryPortAdapter) ListSubnets(ctx context.Context, networkID string) (*model.Listing[model.Subnet], error) {
	if networkID == "" {
		return nil, &model.LookupFailure{Kind: model.KindSubnet, Err: errors.New("network id is required")}
	}
	items, err := a.driver.SubnetList(ctx, networkID)
	if err != nil {
		return nil, &model.LookupFailure{Kind: model.KindSubnet, Err: err}
	}
	out := make([]model.Subnet, 0, len(items))
	for i, s := range items {
		if s == nil || s.ID == "" || s.CIDR == "" || s.AvailabilityZone == "" {
			return nil, malformed(model.KindSubnet, i, "id, cidr and availability zone are required")
		}
		out = append(out, *s)
	}
	return model.NewListing(model.KindSubnet, out), nil
}

func (a *inventoryPortAdapter) ListRouteTables(ctx context.Context, networkID string) (*model.Listing[model.RouteTable], error) {
	if networkID == "" {
		return nil, &model.LookupFailure{Kind: model.KindRouteTable, Err: errors.New("network id is required")}
	}
	items, err := a.driver.RouteTableList(ctx, networkID)
	if err != nil {
		return nil, &model.LookupFailure{Kind: model.KindRouteTable, Err: err}
	}
	out := make([]model.RouteTable, 0, len(items))
	for i, rt := range items {
		if rt == nil || rt.ID == "" {
			return nil, malformed(model.KindRouteTable, i, "id is required")
		}
		out = append(out, *rt)
	}
	return model.NewListing(model.KindRouteTable, out), nil
}

func (a *inventoryPortAdapter) CreateAttachment(ctx context.Context, hubID, networkID string, subnetIDs []string) (*model.Attachment, error) {
	const op = "create attachment"
	if hubID == "" || networkID == "" || len(subnetIDs) == 0 {
		return nil, &model.MutationFailure{Operation: op, Err: errors.New("hub id, network id and at least one subnet id are required")}
	}
	att, err := a.driver.AttachmentCreate(ctx, hubID, networkID, subnetIDs)
	if err != nil {
		return nil, &model.MutationFailure{Operation: op, Err: err}
	}
	if att == nil || att.ID == "" {
		return nil, &model.MutationFailure{Operation: op, Err: errors.New("response has no attachment id")}
	}
	return att, nil
}

func (a *inventoryPortAdapter) CreateRoute(ctx context.Context, route model.Route) error {
	const op = "create route"
	if route.RouteTableID == "" || route.DestinationCIDR == "" || route.HubID == "" {
		return &model.MutationFailure{Operation: op, Err: errors.New("route table id, destination cidr and hub id are required")}
	}
	if err := a.driver.RouteCreate(ctx, route); err != nil {
		return &model.MutationFailure{Operation: op, Err: err}
	}
	return nil
}

func malformed(kind string, index int, reason string) error {
	return &model.LookupFailure{Kind: kind, Err: fmt.Errorf("malformed entry %d: %s", index, reason)}
}

// GetInventoryPort returns a model.InventoryPort implemented via the provider's driver.
func GetInventoryPort(provider model.Provider) (model.InventoryPort, error) {
	name := strings.TrimSpace(provider.Driver)
	factory, exists := GetDriverFactory(name)
	if !exists {
		return nil, fmt.Errorf("unknown provider driver: %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	driver, err := factory(provider.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver %s: %w", name, err)
	}
	return &inventoryPortAdapter{driver: driver}, nil
}

// NewInventoryPort wraps an already constructed driver.
func NewInventoryPort(driver Driver) model.InventoryPort {
	return &inventoryPortAdapter{driver: driver}
}
