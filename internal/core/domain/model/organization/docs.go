// Package organization models the tenant (Organization) and its customer
// facing branches (Outlet).
package organization
