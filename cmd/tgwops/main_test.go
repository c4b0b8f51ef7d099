package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yaegashi/tgwops/domain/model"
)

const testInventory = `
networks:
  - {id: vpc-1, cidr: 10.0.0.0/16, state: available}
  - {id: vpc-2, cidr: 10.1.0.0/16, state: available}
hubs:
  - {id: tgw-1, description: core, state: available}
subnets:
  - {id: subnet-a, cidr: 10.0.1.0/24, availabilityZone: us-west-2a, networkId: vpc-1}
  - {id: subnet-b, cidr: 10.1.1.0/24, availabilityZone: us-west-2b, networkId: vpc-2}
routeTables:
  - id: rtb-1
    networkId: vpc-1
    routes:
      - {destinationCidr: 10.0.0.0/16, target: local}
`

// testProject writes an inventory snapshot and a config selecting it.
func testProject(t *testing.T) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	snap := filepath.Join(dir, "inventory.yml")
	if err := os.WriteFile(snap, []byte(testInventory), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath = filepath.Join(dir, "config.yml")
	cfg := "version: 1\nprovider:\n  driver: snapshot\n  settings:\n    SNAPSHOT_FILE: " + snap + "\nlogging:\n  output: none\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, configPath
}

func runCLI(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	code := execute(context.Background(), root, args)
	return out.String(), code
}

func TestAttachCommand(t *testing.T) {
	dir, cfg := testProject(t)
	outPath := filepath.Join(dir, "tf", "main.tf")

	stdout, code := runCLI(t, "0\n0\n0\n0\n0\n0\n", "--config", cfg, "attach", "-o", outPath, "--region", "us-west-2", "--resource-name", "core")
	if code != 0 {
		t.Fatalf("exit code = %d, output:\n%s", code, stdout)
	}
	for _, want := range []string{
		"Listing all VPCs:",
		"Listing all VPCs again for destination selection:",
		"Transit Gateway Attachment created: tgw-attach-",
		"Terraform script generated: " + outPath,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc := string(data)
	for _, want := range []string{
		`provider "aws"`,
		`"us-west-2"`,
		`resource "aws_ec2_transit_gateway_vpc_attachment" "core"`,
		`resource "aws_route" "core"`,
		`"tgw-1"`,
		`"vpc-1"`,
		`"subnet-a"`,
		`"rtb-1"`,
		`"10.1.1.0/24"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestAttachCommandFailures(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantOut  []string
	}{
		{name: "input ends at hub prompt", stdin: "0\n", wantCode: exitAborted, wantOut: []string{"Error: step SelectHub:", "aborted by operator"}},
		{name: "hub index out of range", stdin: "0\n5\n", wantCode: exitFailure, wantOut: []string{"Error: step SelectHub:", "out of range", "valid 0..0"}},
		{name: "non numeric subnet input", stdin: "0\n0\na,b\n", wantCode: exitFailure, wantOut: []string{"Error: step SelectSourceSubnets:"}},
		{name: "unknown driver", stdin: "", args: []string{"--driver", "nope"}, wantCode: exitFailure, wantOut: []string{"Error: ", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, cfg := testProject(t)
			outPath := filepath.Join(dir, "main.tf")
			args := append([]string{"--config", cfg, "attach", "-o", outPath}, tt.args...)
			stdout, code := runCLI(t, tt.stdin, args...)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d, output:\n%s", code, tt.wantCode, stdout)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
			if _, err := os.Stat(outPath); !os.IsNotExist(err) {
				t.Errorf("output file must not exist, stat err = %v", err)
			}
		})
	}
}

func TestInventoryCommand(t *testing.T) {
	_, cfg := testProject(t)

	stdout, code := runCLI(t, "", "--config", cfg, "inventory", "networks", "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, output:\n%s", code, stdout)
	}
	var networks []model.Network
	if err := json.Unmarshal([]byte(stdout), &networks); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	want := []model.Network{
		{ID: "vpc-1", CIDR: "10.0.0.0/16", State: "available"},
		{ID: "vpc-2", CIDR: "10.1.0.0/16", State: "available"},
	}
	if diff := cmp.Diff(want, networks); diff != "" {
		t.Errorf("networks mismatch (-want +got):\n%s", diff)
	}

	stdout, code = runCLI(t, "", "--config", cfg, "inventory", "subnets", "--network-id", "vpc-2")
	if code != 0 {
		t.Fatalf("exit code = %d, output:\n%s", code, stdout)
	}
	for _, want := range []string{"Subnet ID", "Availability Zone", "subnet-b", "us-west-2b"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "subnet-a") {
		t.Errorf("subnet of another VPC listed:\n%s", stdout)
	}

	if _, code := runCLI(t, "", "--config", cfg, "inventory", "route-tables"); code == 0 {
		t.Error("route-tables without --network-id must fail")
	}
	if _, code := runCLI(t, "", "--config", cfg, "inventory", "hubs", "--format", "xml"); code == 0 {
		t.Error("unsupported format must fail")
	}
}

func TestVersionCommand(t *testing.T) {
	_, cfg := testProject(t)
	stdout, code := runCLI(t, "", "--config", cfg, "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stdout, "tgwops version "+version) {
		t.Errorf("unexpected output %q", stdout)
	}
}
