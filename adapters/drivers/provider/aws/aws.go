// Package aws implements the provider driver backed by the Amazon EC2 API.
package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"
	providerdrv "github.com/yaegashi/tgwops/adapters/drivers/provider"
)

// ec2API is the subset of the EC2 client used by the driver.
type ec2API interface {
	ec2.DescribeVpcsAPIClient
	ec2.DescribeTransitGatewaysAPIClient
	ec2.DescribeSubnetsAPIClient
	ec2.DescribeRouteTablesAPIClient
	CreateTransitGatewayVpcAttachment(ctx context.Context, params *ec2.CreateTransitGatewayVpcAttachmentInput, optFns ...func(*ec2.Options)) (*ec2.CreateTransitGatewayVpcAttachmentOutput, error)
	CreateRoute(ctx context.Context, params *ec2.CreateRouteInput, optFns ...func(*ec2.Options)) (*ec2.CreateRouteOutput, error)
}

// driver implements the AWS provider driver.
type driver struct {
	client ec2API
	region string
}

// ID returns the provider identifier.
func (d *driver) ID() string { return "aws" }

// init registers the AWS driver.
func init() {
	providerdrv.Register("aws", func(settings map[string]string) (providerdrv.Driver, error) {
		cfg, err := LoadConfig(context.Background(), settings)
		if err != nil {
			return nil, err
		}

		var clientOpts []func(*ec2.Options)
		if endpoint := setting(settings, "AWS_ENDPOINT_URL"); endpoint != "" {
			clientOpts = append(clientOpts, func(o *ec2.Options) { o.BaseEndpoint = awssdk.String(endpoint) })
		}

		return newDriver(ec2.NewFromConfig(cfg, clientOpts...), cfg.Region), nil
	})
}

func setting(settings map[string]string, k string) string {
	if settings == nil {
		return ""
	}
	return strings.TrimSpace(settings[k])
}

// LoadConfig builds an SDK configuration from driver settings.
// AWS_REGION is required; AWS_AUTH_METHOD selects default, profile or static credentials.
func LoadConfig(ctx context.Context, settings map[string]string) (awssdk.Config, error) {
	get := func(k string) string { return setting(settings, k) }

	region := get("AWS_REGION")
	if region == "" {
		return awssdk.Config{}, fmt.Errorf("missing required AWS settings: AWS_REGION")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	profile := get("AWS_PROFILE")

	authMethod := get("AWS_AUTH_METHOD")
	switch authMethod {
	case "", "default":
		if profile != "" {
			opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
		}
	case "profile":
		if profile == "" {
			return awssdk.Config{}, fmt.Errorf("profile auth requires AWS_PROFILE")
		}
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	case "static":
		keyID := get("AWS_ACCESS_KEY_ID")
		secret := get("AWS_SECRET_ACCESS_KEY")
		if keyID == "" || secret == "" {
			return awssdk.Config{}, fmt.Errorf("static auth requires AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(keyID, secret, get("AWS_SESSION_TOKEN")),
		))
	default:
		return awssdk.Config{}, fmt.Errorf("unsupported AWS_AUTH_METHOD: %s", authMethod)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("load AWS config: %w", err)
	}
	return cfg, nil
}

func newDriver(client ec2API, region string) *driver {
	return &driver{client: client, region: region}
}

// apiError annotates err with the EC2 error code when one is present.
func apiError(op string, err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Errorf("%s: %s: %w", op, ae.ErrorCode(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
