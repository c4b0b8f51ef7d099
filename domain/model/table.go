package model

import "strconv"

// Table is the operator view of a listing: one row per entry, prefixed by its index.
type Table struct {
	Header []string
	Rows   [][]string
}

// NetworkTable renders a network listing.
func NetworkTable(l *Listing[Network]) Table {
	t := Table{Header: []string{"Index", "VPC ID", "CIDR Block", "State"}}
	for i, n := range l.items {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i), n.ID, n.CIDR, n.State})
	}
	return t
}

// HubTable renders a hub listing. A missing description shows as N/A.
func HubTable(l *Listing[Hub]) Table {
	t := Table{Header: []string{"Index", "TGW ID", "Description", "State"}}
	for i, h := range l.items {
		desc := h.Description
		if desc == "" {
			desc = "N/A"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(i), h.ID, desc, h.State})
	}
	return t
}

// SubnetTable renders a subnet listing.
func SubnetTable(l *Listing[Subnet]) Table {
	t := Table{Header: []string{"Index", "Subnet ID", "CIDR Block", "Availability Zone"}}
	for i, s := range l.items {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i), s.ID, s.CIDR, s.AvailabilityZone})
	}
	return t
}

// RouteTableTable renders a route table listing.
func RouteTableTable(l *Listing[RouteTable]) Table {
	t := Table{Header: []string{"Index", "Route Table ID"}}
	for i, rt := range l.items {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i), rt.ID})
	}
	return t
}
