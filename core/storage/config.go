package storage

// Config holds the object storage connection settings.
type Config struct {
	// Endpoint is the host:port of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey authenticates the client.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret half of the credentials.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the bucket resources are read from.
	Bucket string `mapstructure:"bucket" default:"resources"`
	// Region is the bucket location, when the provider needs one.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
