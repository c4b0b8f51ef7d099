package aws

import (
	"context"

	"github.com/yaegashi/tgwops/internal/logging"
)

// withMethodLogger wraps a driver method in an AWS:<method> span.
//
//	ctx, cleanup := d.withMethodLogger(ctx, "NetworkList")
//	defer func() { cleanup(err) }()
func (d *driver) withMethodLogger(ctx context.Context, method string) (context.Context, func(err error)) {
	return logging.Span(ctx, "AWS:"+method, "driver", "AWS."+method, "region", d.region)
}
