// Package staff models the people who act on the platform: users, their roles
// and the Actor identity threaded through every command.
//
// The role permission table lives here (Role.Can). Item stage permissions,
// which depend on the stage catalogue, live with the item in package order.
package staff
