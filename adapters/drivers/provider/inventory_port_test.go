package providerdrv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yaegashi/tgwops/domain/model"
)

// mockDriver is a mock implementation for testing.
type mockDriver struct {
	networkListFunc      func(ctx context.Context) ([]*model.Network, error)
	hubListFunc          func(ctx context.Context) ([]*model.Hub, error)
	subnetListFunc       func(ctx context.Context, networkID string) ([]*model.Subnet, error)
	routeTableListFunc   func(ctx context.Context, networkID string) ([]*model.RouteTable, error)
	attachmentCreateFunc func(ctx context.Context, hubID, networkID string, subnetIDs []string) (*model.Attachment, error)
	routeCreateFunc      func(ctx context.Context, route model.Route) error
}

func (m *mockDriver) ID() string { return "mock" }

func (m *mockDriver) NetworkList(ctx context.Context) ([]*model.Network, error) {
	if m.networkListFunc != nil {
		return m.networkListFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDriver) HubList(ctx context.Context) ([]*model.Hub, error) {
	if m.hubListFunc != nil {
		return m.hubListFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDriver) SubnetList(ctx context.Context, networkID string) ([]*model.Subnet, error) {
	if m.subnetListFunc != nil {
		return m.subnetListFunc(ctx, networkID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDriver) RouteTableList(ctx context.Context, networkID string) ([]*model.RouteTable, error) {
	if m.routeTableListFunc != nil {
		return m.routeTableListFunc(ctx, networkID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDriver) AttachmentCreate(ctx context.Context, hubID, networkID string, subnetIDs []string) (*model.Attachment, error) {
	if m.attachmentCreateFunc != nil {
		return m.attachmentCreateFunc(ctx, hubID, networkID, subnetIDs)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDriver) RouteCreate(ctx context.Context, route model.Route) error {
	if m.routeCreateFunc != nil {
		return m.routeCreateFunc(ctx, route)
	}
	return errors.New("not implemented")
}

func TestListNetworksKeepsProviderOrder(t *testing.T) {
	ctx := context.Background()
	port := NewInventoryPort(&mockDriver{
		networkListFunc: func(ctx context.Context) ([]*model.Network, error) {
			return []*model.Network{
				{ID: "vpc-b", CIDR: "10.1.0.0/16", State: "available"},
				{ID: "vpc-a", CIDR: "10.0.0.0/16", State: "pending"},
			}, nil
		},
	})

	l, err := port.ListNetworks(ctx)
	if err != nil {
		t.Fatalf("ListNetworks() error = %v", err)
	}
	want := []model.Network{
		{ID: "vpc-b", CIDR: "10.1.0.0/16", State: "available"},
		{ID: "vpc-a", CIDR: "10.0.0.0/16", State: "pending"},
	}
	if diff := cmp.Diff(want, l.Items()); diff != "" {
		t.Errorf("ListNetworks() mismatch (-want +got):\n%s", diff)
	}
}

func TestListFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	cases := []struct {
		name          string
		driver        *mockDriver
		call          func(p model.InventoryPort) error
		expectedToken string
	}{
		{
			name:   "network remote error",
			driver: &mockDriver{networkListFunc: func(context.Context) ([]*model.Network, error) { return nil, boom }},
			call: func(p model.InventoryPort) error {
				_, err := p.ListNetworks(ctx)
				return err
			},
			expectedToken: "boom",
		},
		{
			name: "network missing cidr",
			driver: &mockDriver{networkListFunc: func(context.Context) ([]*model.Network, error) {
				return []*model.Network{{ID: "vpc-1"}}, nil
			}},
			call: func(p model.InventoryPort) error {
				_, err := p.ListNetworks(ctx)
				return err
			},
			expectedToken: "malformed entry 0",
		},
		{
			name: "hub missing id",
			driver: &mockDriver{hubListFunc: func(context.Context) ([]*model.Hub, error) {
				return []*model.Hub{{ID: "tgw-1"}, {Description: "x"}}, nil
			}},
			call: func(p model.InventoryPort) error {
				_, err := p.ListHubs(ctx)
				return err
			},
			expectedToken: "malformed entry 1",
		},
		{
			name: "subnet missing zone",
			driver: &mockDriver{subnetListFunc: func(context.Context, string) ([]*model.Subnet, error) {
				return []*model.Subnet{{ID: "subnet-a", CIDR: "10.0.1.0/24"}}, nil
			}},
			call: func(p model.InventoryPort) error {
				_, err := p.ListSubnets(ctx, "vpc-1")
				return err
			},
			expectedToken: "availability zone",
		},
		{
			name:   "subnet without network",
			driver: &mockDriver{},
			call: func(p model.InventoryPort) error {
				_, err := p.ListSubnets(ctx, "")
				return err
			},
			expectedToken: "network id is required",
		},
		{
			name: "route table nil entry",
			driver: &mockDriver{routeTableListFunc: func(context.Context, string) ([]*model.RouteTable, error) {
				return []*model.RouteTable{nil}, nil
			}},
			call: func(p model.InventoryPort) error {
				_, err := p.ListRouteTables(ctx, "vpc-1")
				return err
			},
			expectedToken: "malformed entry 0",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call(NewInventoryPort(tc.driver))
			var lf *model.LookupFailure
			if !errors.As(err, &lf) {
				t.Fatalf("expected LookupFailure, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.expectedToken) {
				t.Fatalf("unexpected error message: %v", err)
			}
		})
	}
}

func TestCreateAttachment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var gotSubnets []string
		port := NewInventoryPort(&mockDriver{
			attachmentCreateFunc: func(ctx context.Context, hubID, networkID string, subnetIDs []string) (*model.Attachment, error) {
				gotSubnets = subnetIDs
				return &model.Attachment{ID: "tgw-attach-1", HubID: hubID, NetworkID: networkID, SubnetIDs: subnetIDs}, nil
			},
		})
		att, err := port.CreateAttachment(ctx, "tgw-1", "vpc-1", []string{"subnet-a", "subnet-a"})
		if err != nil {
			t.Fatalf("CreateAttachment() error = %v", err)
		}
		if att.ID != "tgw-attach-1" {
			t.Errorf("ID = %q", att.ID)
		}
		if diff := cmp.Diff([]string{"subnet-a", "subnet-a"}, gotSubnets); diff != "" {
			t.Errorf("subnets passed through (-want +got):\n%s", diff)
		}
	})

	t.Run("driver error", func(t *testing.T) {
		port := NewInventoryPort(&mockDriver{})
		_, err := port.CreateAttachment(ctx, "tgw-1", "vpc-1", []string{"subnet-a"})
		var mf *model.MutationFailure
		if !errors.As(err, &mf) {
			t.Fatalf("expected MutationFailure, got %v", err)
		}
	})

	t.Run("empty id in response", func(t *testing.T) {
		port := NewInventoryPort(&mockDriver{
			attachmentCreateFunc: func(context.Context, string, string, []string) (*model.Attachment, error) {
				return &model.Attachment{}, nil
			},
		})
		_, err := port.CreateAttachment(ctx, "tgw-1", "vpc-1", []string{"subnet-a"})
		var mf *model.MutationFailure
		if !errors.As(err, &mf) {
			t.Fatalf("expected MutationFailure, got %v", err)
		}
	})

	t.Run("no subnets", func(t *testing.T) {
		called := false
		port := NewInventoryPort(&mockDriver{
			attachmentCreateFunc: func(context.Context, string, string, []string) (*model.Attachment, error) {
				called = true
				return nil, nil
			},
		})
		if _, err := port.CreateAttachment(ctx, "tgw-1", "vpc-1", nil); err == nil {
			t.Fatal("expected error")
		}
		if called {
			t.Error("driver must not be called without subnets")
		}
	})
}

func TestCreateRoute(t *testing.T) {
	ctx := context.Background()
	var got model.Route
	port := NewInventoryPort(&mockDriver{
		routeCreateFunc: func(ctx context.Context, route model.Route) error {
			got = route
			return nil
		},
	})
	want := model.Route{RouteTableID: "rtb-1", DestinationCIDR: "10.1.0.0/16", HubID: "tgw-1"}
	if err := port.CreateRoute(ctx, want); err != nil {
		t.Fatalf("CreateRoute() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CreateRoute() mismatch (-want +got):\n%s", diff)
	}

	failing := NewInventoryPort(&mockDriver{routeCreateFunc: func(context.Context, model.Route) error { return errors.New("RouteAlreadyExists") }})
	err := failing.CreateRoute(ctx, want)
	var mf *model.MutationFailure
	if !errors.As(err, &mf) || mf.Operation != "create route" {
		t.Fatalf("expected MutationFailure for create route, got %v", err)
	}
}

func TestGetInventoryPortUnknownDriver(t *testing.T) {
	_, err := GetInventoryPort(model.Provider{Driver: "does-not-exist"})
	if err == nil || !strings.Contains(err.Error(), "unknown provider driver") {
		t.Fatalf("unexpected error: %v", err)
	}
}
