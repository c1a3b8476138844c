package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"feature-diff/core/database"
	"feature-diff/core/diff"
	"feature-diff/core/logger"
	"feature-diff/core/server"
	"feature-diff/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration. Each section is owned by
// the package that consumes it.
type Config struct {
	// Server configures the start command.
	Server server.Config `mapstructure:"server"`
	// Storage configures s3:// datasets and outputs.
	Storage storage.Config `mapstructure:"storage"`
	Log     logger.Config  `mapstructure:"log"`
	// Database configures db: datasets and outputs.
	Database database.Config `mapstructure:"database"`
	// Compare holds the comparison defaults.
	Compare diff.Config `mapstructure:"compare"`
}

// LoadConfig reads dir/.env, when present, into the environment and then
// resolves every key from the environment or its default tag.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, reflect.TypeOf(Config{}), "")

	// compare.locale <- COMPARE_LOCALE
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindValues registers a viper default for every mapstructure key of t,
// descending into nested sections.
func bindValues(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, field := range reflect.VisibleFields(t) {
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, field.Type, key)
			continue
		}
		// Empty defaults still register the key, or AutomaticEnv ignores it.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
