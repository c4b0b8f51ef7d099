package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yaegashi/tgwops/internal/logging"
)

func newCmdAttach() *cobra.Command {
	var pf providerFlags
	var oo outputOptions

	cmd := &cobra.Command{
		Use:   "attach",
		Short: "Attach a VPC to a Transit Gateway and route a destination subnet through it",
		Long: `Interactively attach a VPC to a Transit Gateway and route a destination subnet through it.

The attach command walks through these steps, prompting for an index at each
selection:
  1. Select the source VPC
  2. Select the Transit Gateway
  3. Select one or more source subnets (comma-separated indices)
  4. Create the Transit Gateway VPC attachment
  5. Select the destination VPC (the source VPC is not offered)
  6. Select the destination subnet
  7. Select the source VPC route table
  8. Add a route for the destination subnet CIDR via the Transit Gateway
  9. Write the equivalent Terraform configuration

Changes made before a failure are not rolled back. No Terraform file is
written unless every step succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			u, provider, err := buildAttachUseCase(cmd, &pf, &oo)
			if err != nil {
				return err
			}
			ctx, cleanup := withCmdRunLogger(cmd.Context(), "attach", provider.Driver)
			defer func() { cleanup(err) }()

			out, err := u.Run(ctx)
			if err != nil {
				return err
			}
			logging.FromContext(ctx).Info(ctx, "terraform written", "path", out.Path, "attachment", out.Selection.Attachment.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Done. Apply or import %s to keep Terraform state in sync.\n", out.Path)
			return nil
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&oo.path, "output", "o", "", "Terraform output file (default from config, then main.tf)")
	cmd.Flags().StringVar(&oo.resourceName, "resource-name", "", "Terraform resource label (default from config, then this)")
	return cmd
}
