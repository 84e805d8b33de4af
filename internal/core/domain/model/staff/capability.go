package staff

// Capability is an operation gated by role.
type Capability int

const (
	CreateOrganizations Capability = iota + 1
	ManageOutlets
	ManageUsers
	CreateOrders
	ManageOrders
	RecordPayments
	RequestDispatches
	AcceptDispatches
	RecordHandovers
	ReportDefects
	ResolveDefects
)

func getCapabilityStrings() map[Capability]string {
	return map[Capability]string{
		CreateOrganizations: "create organizations",
		ManageOutlets:       "manage outlets",
		ManageUsers:         "manage users",
		CreateOrders:        "create orders",
		ManageOrders:        "manage orders",
		RecordPayments:      "record payments",
		RequestDispatches:   "request dispatches",
		AcceptDispatches:    "accept dispatches",
		RecordHandovers:     "record handovers",
		ReportDefects:       "report defects",
		ResolveDefects:      "resolve defects",
	}
}

// String returns a human readable verb phrase used in PermissionDenied messages.
func (c Capability) String() string {
	if s, ok := getCapabilityStrings()[c]; ok {
		return s
	}
	return "perform an unknown action"
}

// roleCapabilities is the role permission table. Admin roles are handled in
// Can and do not appear here.
func roleCapabilities() map[Role][]Capability {
	return map[Role][]Capability{
		Attendant:  {CreateOrders, ManageOrders, RecordPayments, RequestDispatches, ReportDefects},
		Dispatcher: {ManageOrders, RequestDispatches, AcceptDispatches, ReportDefects},
		Washer:     {RecordHandovers, ReportDefects},
		Dryer:      {RecordHandovers, ReportDefects},
		Ironer:     {RecordHandovers, ReportDefects},
		QCPackager: {ManageOrders, RequestDispatches, RecordHandovers, ReportDefects, ResolveDefects},
		Customer:   {CreateOrders},
	}
}

// Can reports whether the role holds the capability.
//
// super_admin can do everything; org_admin can do everything except creating
// organizations.
func (r Role) Can(c Capability) bool {
	switch r {
	case SuperAdmin:
		return true
	case OrgAdmin:
		return c != CreateOrganizations
	}

	for _, granted := range roleCapabilities()[r] {
		if granted == c {
			return true
		}
	}
	return false
}
