package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// FinanceConfig holds the deployment-time constants of the aggregation
// engine. Changing any of these is a redeploy, not a runtime toggle.
type FinanceConfig struct {
	BaseCurrency string `yaml:"base_currency"`
	// FallbackRate converts a project budget whose currency has no table
	// entry and no per-project override.
	FallbackRate float64 `yaml:"fallback_rate"`
	// MonthlyWorkingHours divides a monthly salary into an hourly cost
	// rate. 44h weeks (Mon-Fri 8h + Sat 4h) times 4 weeks.
	MonthlyWorkingHours float64            `yaml:"monthly_working_hours"`
	Rates               map[string]float64 `yaml:"rates"`
	TrendMonths         int                `yaml:"trend_months"`
	ReportCacheTTLSecs  int                `yaml:"report_cache_ttl_seconds"`
}

type Config struct {
	DB      DBConfig      `yaml:"db"`
	MQ      MQConfig      `yaml:"mq"`
	Redis   RedisConfig   `yaml:"redis"`
	JWT     JWTConfig     `yaml:"jwt"`
	Server  ServerConfig  `yaml:"server"`
	Finance FinanceConfig `yaml:"finance"`
}

func Load() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode %s: %v", path, err)
	}

	overrideFromEnv(&cfg)
	applyFinanceDefaults(&cfg.Finance)

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}

// applyFinanceDefaults fills in the engine constants when config.yaml leaves
// them out. The defaults are the rates the dashboard has always shipped with.
func applyFinanceDefaults(fc *FinanceConfig) {
	if fc.BaseCurrency == "" {
		fc.BaseCurrency = "PKR"
	}
	if fc.FallbackRate == 0 {
		fc.FallbackRate = 280
	}
	if fc.MonthlyWorkingHours == 0 {
		fc.MonthlyWorkingHours = 176
	}
	if len(fc.Rates) == 0 {
		fc.Rates = map[string]float64{
			"USD": 280,
			"EUR": 305,
			"GBP": 355,
			"AUD": 185,
			"CAD": 205,
			"PKR": 1,
		}
	}
	if fc.TrendMonths == 0 {
		fc.TrendMonths = 6
	}
	if fc.ReportCacheTTLSecs == 0 {
		fc.ReportCacheTTLSecs = 300
	}
}
