package config

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "SHOPLEDGER"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "SHOPLEDGER_DB_DSN"
	EnvDBHost = "SHOPLEDGER_DB_HOST"
	EnvDBUser = "SHOPLEDGER_DB_USER"
	EnvDBName = "SHOPLEDGER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
