// Package store provides data store functionality.
package store

// Store is an interface for managing users, organizations, teams, boards,
// API keys and invites.
type Store interface {
	UserStore
	OrgStore
	TeamStore
	BoardStore
	ColumnStore
	CardStore
	APIKeyStore
	InviteStore
}
