package providers

import (
	"os"
	"path/filepath"
	"prayerd/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
app:
  timezone: Asia/Riyadh
providers:
  prayerTimes:
    method: 4
    timeout: 5s
webServer:
  host: 127.0.0.1
  port: 18090
logger:
  level: debug
  mode: 0644
  dir: /tmp
store:
  backend: memory
cache:
  enabled: false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_ReadsYaml(t *testing.T) {
	path := writeConfig(t, testConfigYaml)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "Asia/Riyadh", conf.App.Timezone)
	assert.Equal(t, 4, conf.Providers.PrayerTimes.Method)
	assert.Equal(t, 5*time.Second, conf.Providers.PrayerTimes.Timeout)
	assert.Equal(t, 18090, conf.WebServer.Port)
	assert.False(t, conf.Cache.Enabled)
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	conf, err := NewConfigProvider(&structures.CliFlags{})
	require.NoError(t, err)

	assert.Equal(t, "UTC", conf.App.Timezone)
	assert.Equal(t, 0.01, conf.App.DriftTolerance)
	assert.Equal(t, 3, conf.Providers.PrayerTimes.Method)
	assert.Equal(t, 8*time.Second, conf.Providers.PrayerTimes.Timeout)
	assert.Equal(t, "https://api.aladhan.com/v1", conf.Providers.PrayerTimes.BaseURL)
	assert.Equal(t, "memory", conf.Store.Backend)
	assert.Equal(t, 48*time.Hour, conf.Store.Redis.TTL)
	assert.Equal(t, 48*time.Hour, conf.Store.Memory.TTL)
	assert.Equal(t, 10000, conf.Store.Memory.MaxEntries)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	path := writeConfig(t, testConfigYaml)
	t.Setenv("PRAYERD_CALC_METHOD", "2")
	t.Setenv("PRAYERD_LOG_LEVEL", "warn")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 2, conf.Providers.PrayerTimes.Method)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestNewConfigProvider_DotEnv(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PRAYERD_TIMEZONE=Europe/London\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("PRAYERD_TIMEZONE") })

	conf, err := NewConfigProvider(&structures.CliFlags{EnvPath: envPath})
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", conf.App.Timezone)
}

func TestNewConfigProvider_MissingDotEnvIgnored(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{EnvPath: "/nonexistent/.env"})
	assert.NoError(t, err)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: "/nonexistent/config.yaml"})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: etcd\n")
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func validConfig() *structures.Config {
	return &structures.Config{
		App: structures.AppConfig{Timezone: "UTC", DriftTolerance: 0.01},
		Providers: structures.ProvidersConfig{
			PrayerTimes: structures.PrayerTimesProvider{
				BaseURL: "https://api.aladhan.com/v1",
				Timeout: 8 * time.Second,
				Method:  3,
			},
			Geocoding: structures.ProviderEndpoint{
				BaseURL: "https://api.bigdatacloud.net",
				Timeout: 10 * time.Second,
			},
			IPGeo: structures.ProviderEndpoint{
				BaseURL: "https://get.geojs.io",
				Timeout: 10 * time.Second,
			},
		},
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Persistence: structures.Persistence{
			Enabled:      true,
			FilePath:     "/tmp/prayerd.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Store: structures.StoreConfig{Backend: "memory"},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MethodOutOfRange(t *testing.T) {
	c := validConfig()
	c.Providers.PrayerTimes.Method = 99
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_RedisWithoutAddr(t *testing.T) {
	c := validConfig()
	c.Store.Backend = "redis"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Store.Redis.Addr = "127.0.0.1:6379"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_UnknownTimezone(t *testing.T) {
	c := validConfig()
	c.App.Timezone = "Mars/Olympus"
	assert.Error(t, NewCnfValidator(c).Validate())
}
