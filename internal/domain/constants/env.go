package constants

// Deployment environments accepted in config.env.env.
const (
	EnvLocal      = "local"
	EnvDevelop    = "develop"
	EnvProduction = "production"
)
