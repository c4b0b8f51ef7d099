package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/yaegashi/tgwops/domain/model"
)

// Pages are appended in the order EC2 returns them; nothing is sorted.

func vpcFilter(networkID string) []types.Filter {
	return []types.Filter{{Name: awssdk.String("vpc-id"), Values: []string{networkID}}}
}

// NetworkList returns all VPCs in the region.
func (d *driver) NetworkList(ctx context.Context) (out []*model.Network, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "NetworkList")
	defer func() { cleanup(err) }()

	p := ec2.NewDescribeVpcsPaginator(d.client, &ec2.DescribeVpcsInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, apiError("describe vpcs", err)
		}
		for _, v := range page.Vpcs {
			out = append(out, &model.Network{
				ID:    awssdk.ToString(v.VpcId),
				CIDR:  awssdk.ToString(v.CidrBlock),
				State: string(v.State),
			})
		}
	}
	return out, nil
}

// HubList returns all transit gateways in the region.
func (d *driver) HubList(ctx context.Context) (out []*model.Hub, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "HubList")
	defer func() { cleanup(err) }()

	p := ec2.NewDescribeTransitGatewaysPaginator(d.client, &ec2.DescribeTransitGatewaysInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, apiError("describe transit gateways", err)
		}
		for _, tgw := range page.TransitGateways {
			out = append(out, &model.Hub{
				ID:          awssdk.ToString(tgw.TransitGatewayId),
				Description: awssdk.ToString(tgw.Description),
				State:       string(tgw.State),
			})
		}
	}
	return out, nil
}

// SubnetList returns the subnets of a VPC.
func (d *driver) SubnetList(ctx context.Context, networkID string) (out []*model.Subnet, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "SubnetList")
	defer func() { cleanup(err) }()

	p := ec2.NewDescribeSubnetsPaginator(d.client, &ec2.DescribeSubnetsInput{Filters: vpcFilter(networkID)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, apiError("describe subnets", err)
		}
		for _, s := range page.Subnets {
			out = append(out, &model.Subnet{
				ID:               awssdk.ToString(s.SubnetId),
				CIDR:             awssdk.ToString(s.CidrBlock),
				AvailabilityZone: awssdk.ToString(s.AvailabilityZone),
				NetworkID:        awssdk.ToString(s.VpcId),
			})
		}
	}
	return out, nil
}

// RouteTableList returns the route tables of a VPC.
func (d *driver) RouteTableList(ctx context.Context, networkID string) (out []*model.RouteTable, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "RouteTableList")
	defer func() { cleanup(err) }()

	p := ec2.NewDescribeRouteTablesPaginator(d.client, &ec2.DescribeRouteTablesInput{Filters: vpcFilter(networkID)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, apiError("describe route tables", err)
		}
		for _, rt := range page.RouteTables {
			out = append(out, &model.RouteTable{
				ID:        awssdk.ToString(rt.RouteTableId),
				NetworkID: awssdk.ToString(rt.VpcId),
			})
		}
	}
	return out, nil
}
