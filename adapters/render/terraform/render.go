// Package terraform renders resolved transit gateway wiring as Terraform configuration.
package terraform

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/yaegashi/tgwops/domain/model"
	"github.com/zclconf/go-cty/cty"
)

// Terraform resource types emitted by the renderer.
const (
	AttachmentResourceType = "aws_ec2_transit_gateway_vpc_attachment"
	RouteResourceType      = "aws_route"
	DefaultResourceName    = "this"
)

// Renderer implements model.DocumentRenderer.
// The zero value renders without a provider block using DefaultResourceName.
type Renderer struct {
	// Region adds a provider "aws" block when non-empty.
	Region string
	// ResourceName is the label of both resource blocks.
	ResourceName string
}

var _ model.DocumentRenderer = (*Renderer)(nil)

// Render returns the HCL text for doc. Output depends only on doc and the
// renderer fields.
func (r *Renderer) Render(doc model.RouteDocument) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}
	name := r.ResourceName
	if name == "" {
		name = DefaultResourceName
	}
	if !hclsyntax.ValidIdentifier(name) {
		return nil, fmt.Errorf("invalid resource name %q", name)
	}

	f := hclwrite.NewEmptyFile()
	root := f.Body()

	if r.Region != "" {
		provider := root.AppendNewBlock("provider", []string{"aws"}).Body()
		provider.SetAttributeValue("region", cty.StringVal(r.Region))
		root.AppendNewline()
	}

	subnets := make([]cty.Value, 0, len(doc.SubnetIDs))
	for _, id := range doc.SubnetIDs {
		subnets = append(subnets, cty.StringVal(id))
	}
	att := root.AppendNewBlock("resource", []string{AttachmentResourceType, name}).Body()
	att.SetAttributeValue("transit_gateway_id", cty.StringVal(doc.HubID))
	att.SetAttributeValue("vpc_id", cty.StringVal(doc.NetworkID))
	att.SetAttributeValue("subnet_ids", cty.ListVal(subnets))
	root.AppendNewline()

	route := root.AppendNewBlock("resource", []string{RouteResourceType, name}).Body()
	route.SetAttributeValue("route_table_id", cty.StringVal(doc.RouteTableID))
	route.SetAttributeValue("destination_cidr_block", cty.StringVal(doc.DestinationCIDR))
	route.SetAttributeValue("transit_gateway_id", cty.StringVal(doc.HubID))

	return hclwrite.Format(f.Bytes()), nil
}

func validate(doc model.RouteDocument) error {
	var errs []error
	if doc.HubID == "" {
		errs = append(errs, errors.New("hub id is empty"))
	}
	if doc.NetworkID == "" {
		errs = append(errs, errors.New("network id is empty"))
	}
	if len(doc.SubnetIDs) == 0 {
		errs = append(errs, errors.New("no subnet ids"))
	}
	if doc.RouteTableID == "" {
		errs = append(errs, errors.New("route table id is empty"))
	}
	if doc.DestinationCIDR == "" {
		errs = append(errs, errors.New("destination cidr is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("render terraform: %w", errors.Join(errs...))
	}
	return nil
}
