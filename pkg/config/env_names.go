package config

const EnvPrefix = "pidleads"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	StorageDriverSupabase = "supabase"
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
)

const (
	EnvSupabaseURL     = "PIDLEADS_SUPABASE_URL"
	EnvSupabaseAnonKey = "PIDLEADS_SUPABASE_ANON_KEY"
	EnvStorageDriver   = "PIDLEADS_STORAGE_DRIVER"
	EnvDBDSN           = "PIDLEADS_DB_DSN"
	EnvDBHost          = "PIDLEADS_DB_HOST"
	EnvDBUser          = "PIDLEADS_DB_USER"
	EnvDBName          = "PIDLEADS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
