package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Change feed providers
const (
	PubSubProviderMemory = "memory"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Token types
const (
	TokenTypeDevice = "device"
)
