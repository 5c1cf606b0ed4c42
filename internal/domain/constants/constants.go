// Package constants defines shared constant values used across layers.
package constants

// Storage keys for the durable blob store.
const (
	StorageKeyProducts      = "products"
	StorageKeyCart          = "cart"
	StorageKeyNotifications = "notifications"
)

// Change feed providers.
const (
	FeedProviderGoogle = "google"
	FeedProviderLocal  = "local"
)

// Environments.
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)
