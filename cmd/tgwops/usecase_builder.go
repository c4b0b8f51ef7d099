package main

import (
	"fmt"
	"maps"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yaegashi/tgwops/adapters/console"
	providerdrv "github.com/yaegashi/tgwops/adapters/drivers/provider"
	awsdrv "github.com/yaegashi/tgwops/adapters/drivers/provider/aws"
	"github.com/yaegashi/tgwops/adapters/render/terraform"
	"github.com/yaegashi/tgwops/domain/model"
	"github.com/yaegashi/tgwops/usecase/attach"
	"github.com/yaegashi/tgwops/usecase/inventory"
)

// providerFlags are the provider overrides shared by commands that talk to the inventory.
type providerFlags struct {
	driver   string
	region   string
	profile  string
	snapshot string
}

func (f *providerFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.driver, "driver", "", fmt.Sprintf("Provider driver (%s) (default from config, then aws)", strings.Join(providerdrv.Names(), "|")))
	fs.StringVar(&f.region, "region", "", "AWS region (sets AWS_REGION)")
	fs.StringVar(&f.profile, "profile", "", "AWS shared config profile (sets AWS_PROFILE)")
	fs.StringVar(&f.snapshot, "snapshot", "", "Inventory snapshot file (sets SNAPSHOT_FILE, implies --driver snapshot)")
}

// resolveProvider merges the config file provider with command line overrides.
func (f *providerFlags) resolveProvider(cmd *cobra.Command) model.Provider {
	env := runtimeFromContext(cmd.Context()).env
	p := model.Provider{Driver: "aws", Settings: map[string]string{}}
	if env != nil {
		p.Driver = env.Provider.Driver
		maps.Copy(p.Settings, env.Provider.Settings)
	}
	if f.snapshot != "" {
		p.Driver = "snapshot"
		p.Settings["SNAPSHOT_FILE"] = f.snapshot
	}
	if f.driver != "" {
		p.Driver = f.driver
	}
	if f.region != "" {
		p.Settings["AWS_REGION"] = f.region
	}
	if f.profile != "" {
		p.Settings["AWS_PROFILE"] = f.profile
	}
	return p
}

// buildInventoryUseCase creates the inventory listing use case.
func buildInventoryUseCase(cmd *cobra.Command, pf *providerFlags) (*inventory.UseCase, error) {
	port, err := providerdrv.GetInventoryPort(pf.resolveProvider(cmd))
	if err != nil {
		return nil, err
	}
	return &inventory.UseCase{InventoryPort: port}, nil
}

// outputOptions selects where and how the Terraform document is written.
type outputOptions struct {
	path         string
	resourceName string
}

// buildAttachUseCase creates the attach workflow wired to the console and a Terraform file sink.
func buildAttachUseCase(cmd *cobra.Command, pf *providerFlags, oo *outputOptions) (*attach.UseCase, model.Provider, error) {
	provider := pf.resolveProvider(cmd)
	port, err := providerdrv.GetInventoryPort(provider)
	if err != nil {
		return nil, provider, err
	}

	path := oo.path
	resourceName := oo.resourceName
	if env := runtimeFromContext(cmd.Context()).env; env != nil {
		if path == "" {
			path = env.Output.Path
		}
		if resourceName == "" {
			resourceName = env.Output.ResourceName
		}
	}

	sink, err := buildDocumentSink(cmd, provider, path)
	if err != nil {
		return nil, provider, err
	}

	return &attach.UseCase{
		Inventory: port,
		Operator:  console.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		Renderer: &terraform.Renderer{
			Region:       provider.Settings["AWS_REGION"],
			ResourceName: resourceName,
		},
		Sink: sink,
	}, provider, nil
}

// buildDocumentSink returns an S3 sink for s3:// locations and a file sink otherwise.
// The S3 client uses the same AWS settings as the aws driver.
func buildDocumentSink(cmd *cobra.Command, provider model.Provider, path string) (model.DocumentSink, error) {
	if !terraform.IsS3URL(path) {
		return &terraform.FileSink{Path: path}, nil
	}
	cfg, err := awsdrv.LoadConfig(cmd.Context(), provider.Settings)
	if err != nil {
		return nil, fmt.Errorf("configuring S3 output: %w", err)
	}
	return terraform.NewS3Sink(s3.NewFromConfig(cfg), path)
}
