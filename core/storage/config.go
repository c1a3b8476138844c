package storage

// Config holds the S3-compatible endpoint used for s3:// handles.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Region is passed to MakeBucket when an output bucket is created.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds each storage request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
