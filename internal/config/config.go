package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	RelayURL         string `envconfig:"RELAY_URL" required:"true"`
	PrivateKeyHex    string `envconfig:"BOT_PRIVATE_KEY_HEX" required:"true"`
	AdminPubkeyHex   string `envconfig:"ADMIN_HEX" default:""`
	MemoryDBPath     string `envconfig:"MEMORY_DB_PATH" default:"./data/memory.db"`
	StrfryExecPath   string `envconfig:"STRFRY_EXEC_PATH" default:"/usr/local/bin/strfry"`
	RedisAddr        string `envconfig:"REDIS_ADDR" default:""` // empty disables the KV cache
	RedisPassword    string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB          int    `envconfig:"REDIS_DB" default:"0"`
	MeiliHost        string `envconfig:"MEILI_HOST" default:"http://meilisearch:7700"`
	MeiliAPIKey      string `envconfig:"MEILI_API_KEY" default:""`
	CheveretoBaseURL string `envconfig:"CHEVERETO_BASE_URL" default:""`
	CheveretoAPIKey  string `envconfig:"CHEVERETO_API_KEY" default:""`
	CheveretoAlbumID string `envconfig:"CHEVERETO_ALBUM_ID" default:""`
	HealthcheckURL   string `envconfig:"HEALTHCHECK_URL" default:""`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr         string `envconfig:"HTTP_ADDR" default:":8080"`
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
