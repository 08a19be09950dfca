package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"prayerd/internal/structures"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "PrayerTimeDaemon"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.driftTolerance", 0.01)

	v.SetDefault("providers.prayerTimes.baseURL", "https://api.aladhan.com/v1")
	v.SetDefault("providers.prayerTimes.timeout", 8*time.Second)
	v.SetDefault("providers.prayerTimes.method", 3)
	v.SetDefault("providers.geocoding.baseURL", "https://api.bigdatacloud.net")
	v.SetDefault("providers.geocoding.timeout", 10*time.Second)
	v.SetDefault("providers.ipGeo.baseURL", "https://get.geojs.io")
	v.SetDefault("providers.ipGeo.timeout", 10*time.Second)

	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8090)

	v.SetDefault("persistence.enabled", true)
	v.SetDefault("persistence.filePath", "/tmp/prayerd.dat")
	v.SetDefault("persistence.saveInterval", time.Minute)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "/tmp")

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.memory.ttl", 48*time.Hour)
	v.SetDefault("store.memory.maxEntries", 10000)
	v.SetDefault("store.redis.prefix", "prayerd:")
	v.SetDefault("store.redis.ttl", 48*time.Hour)
	v.SetDefault("store.redis.timeout", 2*time.Second)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("metrics.enabled", true)
}

func bindConfigEnv(v *viper.Viper) {
	_ = v.BindEnv("logger.level", "PRAYERD_LOG_LEVEL")
	_ = v.BindEnv("logger.dir", "PRAYERD_LOG_DIR")
	_ = v.BindEnv("app.timezone", "PRAYERD_TIMEZONE")
	_ = v.BindEnv("providers.prayerTimes.method", "PRAYERD_CALC_METHOD")
	_ = v.BindEnv("store.backend", "PRAYERD_STORE_BACKEND")
	_ = v.BindEnv("store.redis.addr", "PRAYERD_REDIS_ADDR")
	_ = v.BindEnv("store.redis.username", "PRAYERD_REDIS_USERNAME")
	_ = v.BindEnv("store.redis.password", "PRAYERD_REDIS_PASSWORD")
	_ = v.BindEnv("persistence.saveInterval", "PRAYERD_SAVE_INTERVAL")
	_ = v.BindEnv("cache.enabled", "PRAYERD_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "PRAYERD_CACHE_SIZE")
	_ = v.BindEnv("metrics.enabled", "PRAYERD_METRICS_ENABLED")
}

// loadDotEnv populates the process environment from a dotenv file.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load env file %s: %w", path, err)
	}
	return nil
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	if err := loadDotEnv(flags.EnvPath); err != nil {
		return nil, err
	}

	v := viper.New()
	setConfigDefaults(v)
	bindConfigEnv(v)

	if flags.ConfigPath != "" {
		filename := filepath.Base(flags.ConfigPath)
		v.AddConfigPath(filepath.Dir(flags.ConfigPath))
		v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
