package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete storefront configuration, loadable from
// environment variables (SHOPHUB_ prefix), flags, or YAML config files.
type Config struct {
	Addr           string        `default:"127.0.0.1:8880" usage:"Local UI server listen address"`
	GatewayURL     string        `default:"https://ecommerce-backend-6i5c.onrender.com" usage:"Remote commerce gateway base URL" flag:"gateway-url"`
	SessionFile    string        `default:"" usage:"Persisted session file (default: user config dir)" flag:"session-file"`
	CacheURL       string        `default:"" usage:"Optional Redis URL for the catalog cache" flag:"cache-url"`
	CacheTTL       time.Duration `default:"5m" usage:"Catalog cache TTL" flag:"cache-ttl"`
	ToastTTL       time.Duration `default:"3s" usage:"Toast auto-dismiss window" flag:"toast-ttl"`
	RequestTimeout time.Duration `default:"30s" usage:"Gateway request timeout" flag:"request-timeout"`
	CORS           CORSConfig
	Graceful       GracefulConfig
}

// CORSConfig controls cross-origin access for the embedding UI.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOPHUB",
		Files:     []string{"config.yaml", "/etc/shophub/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if cfg.GatewayURL == "" {
		return nil, errors.New("gateway URL is required: set SHOPHUB_GATEWAY_URL")
	}
	return &cfg, nil
}
