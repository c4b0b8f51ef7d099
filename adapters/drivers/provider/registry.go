package providerdrv

import (
	"context"
	"sort"

	"github.com/yaegashi/tgwops/domain/model"
)

// Driver abstracts provider-specific inventory access.
// Implementations live under adapters/drivers/provider/<name> and should return a
// provider identifier such as "aws" via ID().
// List methods must return entries in provider order.
type Driver interface {
	// ID returns the provider identifier (e.g., "aws").
	ID() string

	// NetworkList returns all networks visible to the account.
	NetworkList(ctx context.Context) ([]*model.Network, error)

	// HubList returns all transit hubs visible to the account.
	HubList(ctx context.Context) ([]*model.Hub, error)

	// SubnetList returns the subnets of a network.
	SubnetList(ctx context.Context, networkID string) ([]*model.Subnet, error)

	// RouteTableList returns the route tables of a network.
	RouteTableList(ctx context.Context, networkID string) ([]*model.RouteTable, error)

	// AttachmentCreate attaches a network to a hub through the given subnets.
	AttachmentCreate(ctx context.Context, hubID, networkID string, subnetIDs []string) (*model.Attachment, error)

	// RouteCreate installs a route pointing at a hub.
	RouteCreate(ctx context.Context, route model.Route) error
}

// driverFactory is a constructor function for a provider driver.
type driverFactory func(settings map[string]string) (Driver, error)

// registry holds registered drivers by name.
var registry = map[string]driverFactory{}

// Register makes a driver available by the given name. Drivers should call
// this from their init() function.
func Register(name string, factory driverFactory) {
	registry[name] = factory
}

// GetDriverFactory returns the driver factory function for the given name.
func GetDriverFactory(name string) (driverFactory, bool) {
	factory, exists := registry[name]
	return factory, exists
}

// Names returns the registered driver names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
