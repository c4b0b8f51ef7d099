package aws

import (
	"context"
	"errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/yaegashi/tgwops/domain/model"
)

// AttachmentCreate creates a transit gateway VPC attachment.
// Subnet IDs are passed as given, duplicates included.
func (d *driver) AttachmentCreate(ctx context.Context, hubID, networkID string, subnetIDs []string) (att *model.Attachment, err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "AttachmentCreate")
	defer func() { cleanup(err) }()

	out, err := d.client.CreateTransitGatewayVpcAttachment(ctx, &ec2.CreateTransitGatewayVpcAttachmentInput{
		TransitGatewayId: awssdk.String(hubID),
		VpcId:            awssdk.String(networkID),
		SubnetIds:        subnetIDs,
	})
	if err != nil {
		return nil, apiError("create transit gateway vpc attachment", err)
	}
	if out == nil || out.TransitGatewayVpcAttachment == nil {
		return nil, errors.New("create transit gateway vpc attachment: empty response")
	}
	a := out.TransitGatewayVpcAttachment
	att = &model.Attachment{
		ID:        awssdk.ToString(a.TransitGatewayAttachmentId),
		HubID:     hubID,
		NetworkID: networkID,
		SubnetIDs: append([]string(nil), subnetIDs...),
		State:     string(a.State),
	}
	return att, nil
}

// RouteCreate adds a route targeting the transit gateway.
func (d *driver) RouteCreate(ctx context.Context, route model.Route) (err error) {
	ctx, cleanup := d.withMethodLogger(ctx, "RouteCreate")
	defer func() { cleanup(err) }()

	out, err := d.client.CreateRoute(ctx, &ec2.CreateRouteInput{
		RouteTableId:         awssdk.String(route.RouteTableID),
		DestinationCidrBlock: awssdk.String(route.DestinationCIDR),
		TransitGatewayId:     awssdk.String(route.HubID),
	})
	if err != nil {
		return apiError("create route", err)
	}
	if out != nil && out.Return != nil && !*out.Return {
		return errors.New("create route: request was not accepted")
	}
	return nil
}
