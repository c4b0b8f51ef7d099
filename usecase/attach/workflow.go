package attach

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaegashi/tgwops/domain/model"
	"github.com/yaegashi/tgwops/internal/logging"
)

// run carries the state of one workflow execution.
type run struct {
	u    *UseCase
	step Step
	sel  Selection
}

// Run executes the attach workflow from the first listing to the written document.
//
// Failures before CreateAttachment leave the inventory untouched. A failure
// after it leaves the attachment in place; it is reported to the operator and
// never rolled back. No document is written unless both mutations succeed.
func (u *UseCase) Run(ctx context.Context) (*RunOutput, error) {
	if u.Inventory == nil || u.Operator == nil || u.Renderer == nil || u.Sink == nil {
		return nil, errors.New("attach use case is not fully wired")
	}
	r := &run{u: u, step: stepNone}
	stages := []func(context.Context) error{
		r.sourceNetwork,
		r.hub,
		r.sourceSubnets,
		r.createAttachment,
		r.destinationNetwork,
		r.destinationSubnet,
		r.routeTable,
		r.createRoute,
	}
	for _, stage := range stages {
		if err := stage(ctx); err != nil {
			r.warnLeftovers(ctx)
			return nil, err
		}
	}
	out, err := r.serialize(ctx)
	if err != nil {
		r.warnLeftovers(ctx)
		return nil, err
	}
	if err := r.enter(ctx, StepDone); err != nil {
		return nil, err
	}
	return out, nil
}

// enter advances the workflow to s, which must be the next step.
func (r *run) enter(ctx context.Context, s Step) error {
	if s != r.step+1 {
		return fmt.Errorf("workflow cannot move from %s to %s", r.step, s)
	}
	r.step = s
	logging.FromContext(ctx).Info(ctx, "STEP:"+s.String())
	return nil
}

func (r *run) fail(err error) error {
	return &StepError{Step: r.step, Err: err}
}

func (r *run) sourceNetwork(ctx context.Context) error {
	if err := r.enter(ctx, StepListSourceNetworks); err != nil {
		return err
	}
	networks, err := r.u.Inventory.ListNetworks(ctx)
	if err != nil {
		return r.fail(err)
	}
	if err := r.u.Operator.Show(ctx, "Listing all VPCs:", model.NetworkTable(networks)); err != nil {
		return r.fail(err)
	}

	if err := r.enter(ctx, StepSelectSourceNetwork); err != nil {
		return err
	}
	n, err := chooseOne(ctx, r.u.Operator, networks, "Enter the index of the VPC to attach to the Transit Gateway: ")
	if err != nil {
		return r.fail(err)
	}
	r.sel.SourceNetwork = n
	logging.FromContext(ctx).Info(ctx, "selected source network", "network", n.ID, "cidr", n.CIDR)
	return nil
}

func (r *run) hub(ctx context.Context) error {
	if err := r.enter(ctx, StepListHubs); err != nil {
		return err
	}
	hubs, err := r.u.Inventory.ListHubs(ctx)
	if err != nil {
		return r.fail(err)
	}
	if err := r.u.Operator.Show(ctx, "Listing all Transit Gateways:", model.HubTable(hubs)); err != nil {
		return r.fail(err)
	}

	if err := r.enter(ctx, StepSelectHub); err != nil {
		return err
	}
	h, err := chooseOne(ctx, r.u.Operator, hubs, "Enter the index of the Transit Gateway to attach the VPC to: ")
	if err != nil {
		return r.fail(err)
	}
	r.sel.Hub = h
	logging.FromContext(ctx).Info(ctx, "selected hub", "hub", h.ID)
	return nil
}

func (r *run) sourceSubnets(ctx context.Context) error {
	if err := r.enter(ctx, StepListSourceSubnets); err != nil {
		return err
	}
	networkID := r.sel.SourceNetwork.ID
	subnets, err := r.u.Inventory.ListSubnets(ctx, networkID)
	if err != nil {
		return r.fail(err)
	}
	if err := r.u.Operator.Show(ctx, fmt.Sprintf("Listing subnets for VPC %s:", networkID), model.SubnetTable(subnets)); err != nil {
		return r.fail(err)
	}

	if err := r.enter(ctx, StepSelectSourceSubnets); err != nil {
		return err
	}
	chosen, err := chooseMany(ctx, r.u.Operator, subnets, "Enter the indices of the Subnet IDs to associate with the Transit Gateway (comma-separated): ")
	if err != nil {
		return r.fail(err)
	}
	r.sel.SourceSubnets = chosen
	logging.FromContext(ctx).Info(ctx, "selected source subnets", "subnets", r.sel.SubnetIDs())
	return nil
}

func (r *run) createAttachment(ctx context.Context) error {
	if err := r.enter(ctx, StepCreateAttachment); err != nil {
		return err
	}
	r.u.Operator.Notify(ctx, "Creating Transit Gateway Attachment...")
	att, err := r.u.Inventory.CreateAttachment(ctx, r.sel.Hub.ID, r.sel.SourceNetwork.ID, r.sel.SubnetIDs())
	if err != nil {
		return r.fail(err)
	}
	r.sel.Attachment = att
	logging.FromContext(ctx).Info(ctx, "attachment created", "attachment", att.ID, "state", att.State)
	r.u.Operator.Notify(ctx, fmt.Sprintf("Transit Gateway Attachment created: %s", att.ID))
	return nil
}

func (r *run) destinationNetwork(ctx context.Context) error {
	if err := r.enter(ctx, StepListDestinationNetworks); err != nil {
		return err
	}
	all, err := r.u.Inventory.ListNetworks(ctx)
	if err != nil {
		return r.fail(err)
	}
	sourceID := r.sel.SourceNetwork.ID
	candidates := all.Exclude(func(n model.Network) bool { return n.ID == sourceID })
	if err := r.u.Operator.Show(ctx, "Listing all VPCs again for destination selection:", model.NetworkTable(candidates)); err != nil {
		return r.fail(err)
	}

	if err := r.enter(ctx, StepSelectDestinationNetwork); err != nil {
		return err
	}
	n, err := chooseOne(ctx, r.u.Operator, candidates, "Enter the index of the destination VPC: ")
	if err != nil {
		return r.fail(err)
	}
	r.sel.DestinationNetwork = n
	logging.FromContext(ctx).Info(ctx, "selected destination network", "network", n.ID)
	return nil
}

func (r *run) destinationSubnet(ctx context.Context) error {
	if err := r.enter(ctx, StepListDestinationSubnets); err != nil {
		return err
	}
	networkID := r.sel.DestinationNetwork.ID
	subnets, err := r.u.Inventory.ListSubnets(ctx, networkID)
	if err != nil {
		return r.fail(err)
	}
	if err := r.u.Operator.Show(ctx, fmt.Sprintf("Listing subnets for destination VPC %s:", networkID), model.SubnetTable(subnets)); err != nil {
		return r.fail(err)
	}

	if err := r.enter(ctx, StepSelectDestinationSubnet); err != nil {
		return err
	}
	s, err := chooseOne(ctx, r.u.Operator, subnets, "Enter the index of the destination subnet: ")
	if err != nil {
		return r.fail(err)
	}
	r.sel.DestinationSubnet = s
	logging.FromContext(ctx).Info(ctx, "selected destination subnet", "subnet", s.ID, "cidr", s.CIDR)
	return nil
}

func (r *run) routeTable(ctx context.Context) error {
	if err := r.enter(ctx, StepListSourceRouteTables); err != nil {
		return err
	}
	networkID := r.sel.SourceNetwork.ID
	tables, err := r.u.Inventory.ListRouteTables(ctx, networkID)
	if err != nil {
		return r.fail(err)
	}
	if err := r.u.Operator.Show(ctx, fmt.Sprintf("Listing route tables for VPC %s:", networkID), model.RouteTableTable(tables)); err != nil {
		return r.fail(err)
	}

	if err := r.enter(ctx, StepSelectRouteTable); err != nil {
		return err
	}
	rt, err := chooseOne(ctx, r.u.Operator, tables, "Enter the index of the Route Table to update: ")
	if err != nil {
		return r.fail(err)
	}
	r.sel.RouteTable = rt
	logging.FromContext(ctx).Info(ctx, "selected route table", "routeTable", rt.ID)
	return nil
}

func (r *run) createRoute(ctx context.Context) error {
	if err := r.enter(ctx, StepCreateRoute); err != nil {
		return err
	}
	r.u.Operator.Notify(ctx, "Updating Route Table...")
	if err := r.u.Inventory.CreateRoute(ctx, r.sel.Route()); err != nil {
		return r.fail(err)
	}
	r.u.Operator.Notify(ctx, "Route Table updated.")
	return nil
}

func (r *run) serialize(ctx context.Context) (*RunOutput, error) {
	if err := r.enter(ctx, StepSerialize); err != nil {
		return nil, err
	}
	r.u.Operator.Notify(ctx, "Generating Terraform script...")
	doc, err := r.u.Renderer.Render(r.sel.Document())
	if err != nil {
		return nil, r.fail(err)
	}
	path, err := r.u.Sink.Write(ctx, doc)
	if err != nil {
		return nil, r.fail(err)
	}
	r.u.Operator.Notify(ctx, fmt.Sprintf("Terraform script generated: %s", path))
	sel := r.sel
	return &RunOutput{Selection: &sel, Path: path, Document: doc}, nil
}

// warnLeftovers tells the operator about remote changes a failed run leaves behind.
func (r *run) warnLeftovers(ctx context.Context) {
	att := r.sel.Attachment
	if att == nil {
		return
	}
	msg := fmt.Sprintf("Transit Gateway Attachment %s remains in place and was not rolled back", att.ID)
	if r.step > StepCreateRoute {
		msg = fmt.Sprintf("Route to %s via %s was created and Transit Gateway Attachment %s remains in place, but no Terraform script was written",
			r.sel.DestinationSubnet.CIDR, r.sel.Hub.ID, att.ID)
	}
	logging.FromContext(ctx).Warn(ctx, "run left remote changes", "attachment", att.ID, "step", r.step.String())
	r.u.Operator.Warn(ctx, msg)
}

// chooseOne asks for a single index and resolves it against l.
func chooseOne[T any](ctx context.Context, op Operator, l *model.Listing[T], prompt string) (T, error) {
	var zero T
	answer, err := op.Ask(ctx, prompt)
	if err != nil {
		return zero, err
	}
	i, err := model.ParseIndex(answer)
	if err != nil {
		return zero, err
	}
	return l.Resolve(i)
}

// chooseMany asks for a comma-separated list of indices and resolves each against l.
func chooseMany[T any](ctx context.Context, op Operator, l *model.Listing[T], prompt string) ([]T, error) {
	answer, err := op.Ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	indices, err := model.ParseIndices(answer)
	if err != nil {
		return nil, err
	}
	return l.ResolveMany(indices)
}
