package model

// Lifecycle states reported by the provider for networks and hubs.
const (
	StatePending   = "pending"
	StateAvailable = "available"
)

// Network represents an isolated address space (AWS VPC).
type Network struct {
	ID    string `json:"id" yaml:"id"`
	CIDR  string `json:"cidr" yaml:"cidr"`
	State string `json:"state" yaml:"state"`
}

// Hub represents a transit routing hub (AWS Transit Gateway) that networks attach to.
type Hub struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	State       string `json:"state" yaml:"state"`
}

// Subnet is an address block inside exactly one Network.
type Subnet struct {
	ID               string `json:"id" yaml:"id"`
	CIDR             string `json:"cidr" yaml:"cidr"`
	AvailabilityZone string `json:"availabilityZone" yaml:"availabilityZone"`
	NetworkID        string `json:"networkId" yaml:"networkId"`
}

// RouteTable holds routing entries for exactly one Network.
type RouteTable struct {
	ID        string `json:"id" yaml:"id"`
	NetworkID string `json:"networkId" yaml:"networkId"`
}

// Attachment binds a Hub to a Network through one or more Subnets.
// It only exists after a successful CreateAttachment call.
type Attachment struct {
	ID        string   `json:"id" yaml:"id"`
	HubID     string   `json:"hubId" yaml:"hubId"`
	NetworkID string   `json:"networkId" yaml:"networkId"`
	SubnetIDs []string `json:"subnetIds" yaml:"subnetIds"`
	State     string   `json:"state,omitempty" yaml:"state,omitempty"`
}

// Route sends traffic for DestinationCIDR in RouteTableID to HubID.
type Route struct {
	RouteTableID    string `json:"routeTableId" yaml:"routeTableId"`
	DestinationCIDR string `json:"destinationCidr" yaml:"destinationCidr"`
	HubID           string `json:"hubId" yaml:"hubId"`
}
