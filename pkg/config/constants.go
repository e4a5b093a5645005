package config

// EnvPrefix is the namespace shared by every environment variable.
const EnvPrefix = "INILAP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "INILAP_DB_DSN"
	EnvDBHost = "INILAP_DB_HOST"
	EnvDBUser = "INILAP_DB_USER"
	EnvDBName = "INILAP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
