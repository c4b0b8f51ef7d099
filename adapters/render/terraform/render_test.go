package terraform

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/yaegashi/tgwops/domain/model"
)

func scenarioC() model.RouteDocument {
	return model.RouteDocument{
		HubID:           "tgw-1",
		NetworkID:       "vpc-1",
		SubnetIDs:       []string{"subnet-a"},
		RouteTableID:    "rtb-1",
		DestinationCIDR: "10.1.0.0/16",
	}
}

type parsedBlock struct {
	Type   string
	Labels []string
	Attrs  map[string]any
}

// parse decodes rendered HCL into plain Go values for comparison.
func parse(t *testing.T, src []byte) []parsedBlock {
	t.Helper()
	f, diags := hclsyntax.ParseConfig(src, "main.tf", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		t.Fatalf("rendered document does not parse: %s\n%s", diags.Error(), src)
	}
	body := f.Body.(*hclsyntax.Body)
	if len(body.Attributes) != 0 {
		t.Fatalf("unexpected top-level attributes: %v", body.Attributes)
	}
	var out []parsedBlock
	for _, b := range body.Blocks {
		pb := parsedBlock{Type: b.Type, Labels: b.Labels, Attrs: map[string]any{}}
		for name, attr := range b.Body.Attributes {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				t.Fatalf("attribute %s: %s", name, diags.Error())
			}
			if v.Type().IsTupleType() || v.Type().IsListType() {
				var items []string
				for _, e := range v.AsValueSlice() {
					items = append(items, e.AsString())
				}
				pb.Attrs[name] = items
				continue
			}
			pb.Attrs[name] = v.AsString()
		}
		out = append(out, pb)
	}
	return out
}

func TestRenderScenario(t *testing.T) {
	r := &Renderer{}
	out, err := r.Render(scenarioC())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := []parsedBlock{
		{
			Type:   "resource",
			Labels: []string{"aws_ec2_transit_gateway_vpc_attachment", "this"},
			Attrs: map[string]any{
				"transit_gateway_id": "tgw-1",
				"vpc_id":             "vpc-1",
				"subnet_ids":         []string{"subnet-a"},
			},
		},
		{
			Type:   "resource",
			Labels: []string{"aws_route", "this"},
			Attrs: map[string]any{
				"route_table_id":         "rtb-1",
				"destination_cidr_block": "10.1.0.0/16",
				"transit_gateway_id":     "tgw-1",
			},
		},
	}
	if diff := cmp.Diff(want, parse(t, out)); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s\n%s", diff, out)
	}
}

func TestRenderProviderBlockAndName(t *testing.T) {
	doc := scenarioC()
	doc.SubnetIDs = []string{"subnet-a", "subnet-b", "subnet-a"}
	r := &Renderer{Region: "us-west-2", ResourceName: "link"}
	out, err := r.Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	blocks := parse(t, out)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3:\n%s", len(blocks), out)
	}
	if blocks[0].Type != "provider" || blocks[0].Attrs["region"] != "us-west-2" {
		t.Errorf("unexpected provider block: %+v", blocks[0])
	}
	resources := 0
	for _, b := range blocks {
		if b.Type == "resource" {
			resources++
			if b.Labels[1] != "link" {
				t.Errorf("resource label = %q, want link", b.Labels[1])
			}
		}
	}
	if resources != 2 {
		t.Errorf("got %d resource blocks, want 2", resources)
	}
	if diff := cmp.Diff([]string{"subnet-a", "subnet-b", "subnet-a"}, blocks[1].Attrs["subnet_ids"]); diff != "" {
		t.Errorf("subnet_ids (-want +got):\n%s", diff)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := &Renderer{Region: "us-west-2"}
	first, err := r.Render(scenarioC())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := r.Render(scenarioC())
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("render %d differs:\n%s\n---\n%s", i, first, again)
		}
	}
}

func TestRenderRejectsIncompleteInput(t *testing.T) {
	r := &Renderer{}
	cases := []struct {
		name          string
		mutate        func(*model.RouteDocument)
		expectedToken string
	}{
		{name: "no hub", mutate: func(d *model.RouteDocument) { d.HubID = "" }, expectedToken: "hub id"},
		{name: "no subnets", mutate: func(d *model.RouteDocument) { d.SubnetIDs = nil }, expectedToken: "no subnet ids"},
		{name: "no cidr", mutate: func(d *model.RouteDocument) { d.DestinationCIDR = "" }, expectedToken: "destination cidr"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := scenarioC()
			tc.mutate(&doc)
			_, err := r.Render(doc)
			if err == nil || !strings.Contains(err.Error(), tc.expectedToken) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}

	if _, err := (&Renderer{ResourceName: "bad name"}).Render(scenarioC()); err == nil {
		t.Error("expected error for invalid resource name")
	}
}

func TestFileSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "main.tf")
	sink := &FileSink{Path: path}
	ctx := context.Background()

	if _, err := sink.Write(ctx, []byte("first version with more bytes\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := sink.Write(ctx, []byte("second\n"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got != path {
		t.Errorf("Write() path = %q, want %q", got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second\n" {
		t.Errorf("file content = %q, want overwritten content", data)
	}
}
