package staff

// Module names the permission-bearing areas of the backend.
type Module string

const (
	ModuleOrders    Module = "orders"
	ModuleBilling   Module = "billing"
	ModuleSupport   Module = "support"
	ModuleLeads     Module = "leads"
	ModuleLogistics Module = "logistics"
	ModuleReports   Module = "reports"
)

// Feature names a tenant-level feature flag. Disabling a feature zeroes
// every permission under its mapped module.
type Feature string

const (
	FeatureBilling           Feature = "billing"
	FeatureSupportTickets    Feature = "support_tickets"
	FeatureLeadManagement    Feature = "lead_management"
	FeatureLogisticsTracking Feature = "logistics_tracking"
	FeatureAnalytics         Feature = "analytics"
)

// PermissionMap is a module -> action -> allowed mapping.
type PermissionMap map[Module]map[string]bool

var permissionActions = []string{"view", "create", "edit", "delete"}

// featureModules is the static feature -> module table. It is plain data so
// the zeroing rule can be tested as data-in/data-out.
var featureModules = []struct {
	Feature Feature
	Module  Module
}{
	{FeatureBilling, ModuleBilling},
	{FeatureSupportTickets, ModuleSupport},
	{FeatureLeadManagement, ModuleLeads},
	{FeatureLogisticsTracking, ModuleLogistics},
	{FeatureAnalytics, ModuleReports},
}

// roleDefaults returns the default permission map per role.
// Branch admins operate orders/support/logistics; tenant admins everything
// in their tenant; regional admins and platform operators everything.
func roleDefaults(role Role) PermissionMap {
	switch role {
	case RoleBranchAdmin:
		return buildPermissions(map[Module][]string{
			ModuleOrders:    {"view", "create", "edit"},
			ModuleSupport:   {"view", "create", "edit"},
			ModuleLogistics: {"view", "edit"},
			ModuleReports:   {"view"},
		})
	case RoleTenantAdmin, RoleRegionalAdmin, RolePlatformOperator:
		full := map[Module][]string{}
		for _, module := range []Module{
			ModuleOrders, ModuleBilling, ModuleSupport,
			ModuleLeads, ModuleLogistics, ModuleReports,
		} {
			full[module] = permissionActions
		}
		return buildPermissions(full)
	default:
		return PermissionMap{}
	}
}

func buildPermissions(granted map[Module][]string) PermissionMap {
	permissions := PermissionMap{}
	for _, module := range []Module{
		ModuleOrders, ModuleBilling, ModuleSupport,
		ModuleLeads, ModuleLogistics, ModuleReports,
	} {
		actions := map[string]bool{}
		for _, action := range permissionActions {
			actions[action] = false
		}
		for _, action := range granted[module] {
			actions[action] = true
		}
		permissions[module] = actions
	}
	return permissions
}

// EffectivePermissions recomputes a role's permission map: start from the
// role defaults, then zero every action under the module mapped from each
// disabled tenant feature.
func EffectivePermissions(role Role, disabledFeatures []Feature) PermissionMap {
	permissions := roleDefaults(role)

	disabled := map[Feature]bool{}
	for _, feature := range disabledFeatures {
		disabled[feature] = true
	}

	for _, mapping := range featureModules {
		if !disabled[mapping.Feature] {
			continue
		}
		for action := range permissions[mapping.Module] {
			permissions[mapping.Module][action] = false
		}
	}

	return permissions
}
