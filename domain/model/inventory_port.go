package model

import "context"

// InventoryPort is the domain port for reading and mutating the network inventory.
// List calls return provider order; every call is a fresh read.
type InventoryPort interface {
	ListNetworks(ctx context.Context) (*Listing[Network], error)
	ListHubs(ctx context.Context) (*Listing[Hub], error)
	ListSubnets(ctx context.Context, networkID string) (*Listing[Subnet], error)
	ListRouteTables(ctx context.Context, networkID string) (*Listing[RouteTable], error)
	CreateAttachment(ctx context.Context, hubID, networkID string, subnetIDs []string) (*Attachment, error)
	CreateRoute(ctx context.Context, route Route) error
}

// RouteDocument is the resolved input of a configuration document.
type RouteDocument struct {
	HubID           string
	NetworkID       string
	SubnetIDs       []string
	RouteTableID    string
	DestinationCIDR string
}

// DocumentRenderer turns a RouteDocument into configuration text.
type DocumentRenderer interface {
	Render(doc RouteDocument) ([]byte, error)
}

// DocumentSink stores a rendered document.
type DocumentSink interface {
	Write(ctx context.Context, data []byte) (string, error)
}
