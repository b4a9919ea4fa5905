package config

const (
	EnvPrefix = "BOTICAVIVA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "BOTICAVIVA_DB_DSN"
	EnvDBHost = "BOTICAVIVA_DB_HOST"
	EnvDBUser = "BOTICAVIVA_DB_USER"
	EnvDBName = "BOTICAVIVA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
