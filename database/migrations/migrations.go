// Package migrations holds the storefront schema history. Each migration
// registers itself with pkg/migration from init(); EnsureSchema applies
// whatever is pending and then repairs drift in the orders table.
package migrations
