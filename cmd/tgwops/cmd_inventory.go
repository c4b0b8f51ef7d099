package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yaegashi/tgwops/adapters/console"
	"github.com/yaegashi/tgwops/domain/model"
	"github.com/yaegashi/tgwops/usecase/inventory"
	"gopkg.in/yaml.v3"
)

func newCmdInventory() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "inventory",
		Aliases:            []string{"inv"},
		Short:              "List networking inventory",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(
		newCmdInventoryList("networks", "List VPCs", model.KindNetwork, false),
		newCmdInventoryList("hubs", "List Transit Gateways", model.KindHub, false),
		newCmdInventoryList("subnets", "List subnets of a VPC", model.KindSubnet, true),
		newCmdInventoryList("route-tables", "List route tables of a VPC", model.KindRouteTable, true),
	)
	return cmd
}

// newCmdInventoryList lists one inventory kind in the order the provider returns it.
func newCmdInventoryList(use, short, kind string, needsNetwork bool) *cobra.Command {
	var pf providerFlags
	var format, networkID string
	cmd := &cobra.Command{
		Use:                use,
		Short:              short,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			u, err := buildInventoryUseCase(cmd, &pf)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "inventory."+use, networkID)
			defer func() { cleanup(err) }()

			out, err := u.List(ctx, &inventory.ListInput{Kind: kind, NetworkID: networkID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "", "table":
				_, err = fmt.Fprintln(w, console.New(cmd.InOrStdin(), w).Render(out.Table))
				return err
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out.Items)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(out.Items); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unsupported format: %q (table|json|yaml)", format)
			}
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|json|yaml)")
	if needsNetwork {
		cmd.Flags().StringVar(&networkID, "network-id", "", "VPC ID (required)")
		_ = cmd.MarkFlagRequired("network-id")
	}
	return cmd
}
