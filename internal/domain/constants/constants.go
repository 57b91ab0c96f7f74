// Package constants holds configuration values shared across layers.
package constants

// Environment names.
const (
	EnvDevelop    = "develop"
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Store scope hint sources.
const (
	QueryStoreID   = "store_id"
	HeaderStoreID  = "X-Store-Id"
	HeaderAPIKey   = "X-API-Key"
	AuditTopicName = "audit-events"
)
