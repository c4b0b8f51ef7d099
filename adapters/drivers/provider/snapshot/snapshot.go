// Package snapshot implements a provider driver over an inventory stored in a YAML file.
// Mutations are applied to the in-memory copy only; the file is never rewritten.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	providerdrv "github.com/yaegashi/tgwops/adapters/drivers/provider"
	"github.com/yaegashi/tgwops/domain/model"
	"github.com/yaegashi/tgwops/internal/logging"
	"gopkg.in/yaml.v3"
)

// Inventory is the YAML document read by the driver.
type Inventory struct {
	Networks    []model.Network    `yaml:"networks"`
	Hubs        []model.Hub        `yaml:"hubs"`
	Subnets     []model.Subnet     `yaml:"subnets"`
	RouteTables []RouteTable       `yaml:"routeTables"`
	Attachments []model.Attachment `yaml:"attachments,omitempty"`
}

// RouteTable is a route table with the routes it already holds.
type RouteTable struct {
	ID        string  `yaml:"id"`
	NetworkID string  `yaml:"networkId"`
	Routes    []Route `yaml:"routes,omitempty"`
}

// Route is an existing route entry.
type Route struct {
	DestinationCIDR string `yaml:"destinationCidr"`
	Target          string `yaml:"target"`
}

type driver struct {
	mu  sync.Mutex
	inv *Inventory
}

func (d *driver) ID() string { return "snapshot" }

func init() {
	providerdrv.Register("snapshot", func(settings map[string]string) (providerdrv.Driver, error) {
		path := strings.TrimSpace(settings["SNAPSHOT_FILE"])
		if path == "" {
			return nil, fmt.Errorf("missing required snapshot settings: SNAPSHOT_FILE")
		}
		inv, err := Load(path)
		if err != nil {
			return nil, err
		}
		return New(inv), nil
	})
}

// Load reads an inventory from a YAML file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an inventory document.
func Parse(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &inv, nil
}

// New returns a driver serving inv. The driver takes ownership of inv.
func New(inv *Inventory) providerdrv.Driver {
	return &driver{inv: inv}
}

func (d *driver) NetworkList(ctx context.Context) ([]*model.Network, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*model.Network, 0, len(d.inv.Networks))
	for i := range d.inv.Networks {
		n := d.inv.Networks[i]
		out = append(out, &n)
	}
	return out, nil
}

func (d *driver) HubList(ctx context.Context) ([]*model.Hub, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*model.Hub, 0, len(d.inv.Hubs))
	for i := range d.inv.Hubs {
		h := d.inv.Hubs[i]
		out = append(out, &h)
	}
	return out, nil
}

func (d *driver) SubnetList(ctx context.Context, networkID string) ([]*model.Subnet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*model.Subnet
	for i := range d.inv.Subnets {
		if s := d.inv.Subnets[i]; s.NetworkID == networkID {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (d *driver) RouteTableList(ctx context.Context, networkID string) ([]*model.RouteTable, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*model.RouteTable
	for _, rt := range d.inv.RouteTables {
		if rt.NetworkID == networkID {
			out = append(out, &model.RouteTable{ID: rt.ID, NetworkID: rt.NetworkID})
		}
	}
	return out, nil
}

func (d *driver) AttachmentCreate(ctx context.Context, hubID, networkID string, subnetIDs []string) (*model.Attachment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasHub(hubID) {
		return nil, fmt.Errorf("transit gateway %s not found", hubID)
	}
	for _, id := range subnetIDs {
		if !d.subnetIn(id, networkID) {
			return nil, fmt.Errorf("subnet %s not found in %s", id, networkID)
		}
	}
	att := model.Attachment{
		ID:        "tgw-attach-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:17],
		HubID:     hubID,
		NetworkID: networkID,
		SubnetIDs: append([]string(nil), subnetIDs...),
		State:     model.StatePending,
	}
	d.inv.Attachments = append(d.inv.Attachments, att)
	logging.FromContext(ctx).Info(ctx, "SNAPSHOT:AttachmentCreate", "attachment", att.ID, "hub", hubID, "network", networkID)
	return &att, nil
}

func (d *driver) RouteCreate(ctx context.Context, route model.Route) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasHub(route.HubID) {
		return fmt.Errorf("transit gateway %s not found", route.HubID)
	}
	for i := range d.inv.RouteTables {
		rt := &d.inv.RouteTables[i]
		if rt.ID != route.RouteTableID {
			continue
		}
		for _, r := range rt.Routes {
			if r.DestinationCIDR == route.DestinationCIDR {
				return fmt.Errorf("RouteAlreadyExists: route %s already exists in %s", route.DestinationCIDR, rt.ID)
			}
		}
		rt.Routes = append(rt.Routes, Route{DestinationCIDR: route.DestinationCIDR, Target: route.HubID})
		logging.FromContext(ctx).Info(ctx, "SNAPSHOT:RouteCreate", "routeTable", rt.ID, "destination", route.DestinationCIDR, "hub", route.HubID)
		return nil
	}
	return fmt.Errorf("route table %s not found", route.RouteTableID)
}

func (d *driver) hasHub(id string) bool {
	for _, h := range d.inv.Hubs {
		if h.ID == id {
			return true
		}
	}
	return false
}

func (d *driver) subnetIn(id, networkID string) bool {
	for _, s := range d.inv.Subnets {
		if s.ID == id && s.NetworkID == networkID {
			return true
		}
	}
	return false
}
