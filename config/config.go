package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "1MB"

	defaultFreeDeviceLimit = 3

	defaultCatchUpPageSize = 500
	defaultPollPageSize    = 50
	defaultMaxPageSize     = 1000
	defaultPollInterval    = 5 * time.Second
	defaultCacheLimit      = 1000

	defaultBusSendBuffer    = 64
	defaultBusWriteTimeout  = 5 * time.Second
	defaultBusPingInterval  = 30 * time.Second
	defaultReconnectBase    = 3 * time.Second
	defaultReconnectMax     = time.Minute
	defaultReconnectJitter  = 0.5
	defaultDeviceTokenTTL   = 30 * 24 * time.Hour
	defaultPairingRateLimit = 1.0
	defaultPairingBurst     = 5

	defaultClientServerURL  = "http://localhost:8080"
	defaultClientDataDir    = ".mirror"
	defaultClientDeviceName = "mirror-cli"
	defaultClientDeviceType = "desktop"
	defaultClientTimeout    = 30 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Device string `json:"device" yaml:"device"`
	} `json:"secretKey" yaml:"secretKey"`

	// DeviceToken configuration for device access tokens
	DeviceToken *DeviceTokenConfig `json:"deviceToken" yaml:"deviceToken"`

	// Plans maps subscription plans to device limits
	Plans *PlansConfig `json:"plans" yaml:"plans"`

	// Sync configuration for the delta sync engine
	Sync *SyncConfig `json:"sync" yaml:"sync"`

	// Bus configuration for the real-time change bus
	Bus *BusConfig `json:"bus" yaml:"bus"`

	// RateLimit configuration for unauthenticated pairing endpoints
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	// Firebase configuration for wake pushes
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// QRCode configuration for pairing QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for the change feed
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Client configuration for the device-side CLI
	Client *ClientConfig `json:"client" yaml:"client"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DeviceTokenConfig defines the lifetime of issued device tokens
type DeviceTokenConfig struct {
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// PlansConfig defines device limits per plan. A limit of 0 means unbounded.
type PlansConfig struct {
	FreeDeviceLimit int `json:"freeDeviceLimit" yaml:"freeDeviceLimit"`
	PaidDeviceLimit int `json:"paidDeviceLimit" yaml:"paidDeviceLimit"`
}

// SyncConfig defines page sizes and intervals for delta sync
type SyncConfig struct {
	CatchUpPageSize int           `json:"catchUpPageSize" yaml:"catchUpPageSize"`
	PollPageSize    int           `json:"pollPageSize" yaml:"pollPageSize"`
	MaxPageSize     int           `json:"maxPageSize" yaml:"maxPageSize"`
	PollInterval    time.Duration `json:"pollInterval" yaml:"pollInterval"`
	CacheLimit      int           `json:"cacheLimit" yaml:"cacheLimit"`
}

// BusConfig defines server fan-out and client reconnect behavior
type BusConfig struct {
	// Per-connection outbound queue length before a connection is considered slow
	SendBuffer   int           `json:"sendBuffer" yaml:"sendBuffer"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	PingInterval time.Duration `json:"pingInterval" yaml:"pingInterval"`

	ReconnectBase   time.Duration `json:"reconnectBase" yaml:"reconnectBase"`
	ReconnectMax    time.Duration `json:"reconnectMax" yaml:"reconnectMax"`
	ReconnectJitter float64       `json:"reconnectJitter" yaml:"reconnectJitter"`
}

// RateLimitConfig defines per-IP limits for pairing endpoints
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int     `json:"burst" yaml:"burst"`
}

// FirebaseConfig defines Firebase configuration for wake pushes
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines the change feed provider
type PubSubConfig struct {
	// Provider type: "memory" (default), "local" for memory plus an HTTP relay to the worker, or "google"
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Subscription prefix; each instance reads its own "<prefix>-<instance>" subscription (for google provider)
	SubscriptionID string `json:"subscriptionId" yaml:"subscriptionId"`

	// Stable instance name used in the subscription suffix. Defaults to hostname plus a random suffix.
	InstanceID string `json:"instanceId" yaml:"instanceId"`

	// Worker push endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// ClientConfig defines the device-side CLI settings
type ClientConfig struct {
	ServerURL  string        `json:"serverUrl" yaml:"serverUrl"`
	DataDir    string        `json:"dataDir" yaml:"dataDir"`
	DeviceName string        `json:"deviceName" yaml:"deviceName"`
	DeviceType string        `json:"deviceType" yaml:"deviceType"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: SYNC_POLLINTERVAL -> sync.pollInterval
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// ApplyDefaults fills zero-valued sections with their defaults.
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.DeviceToken == nil {
		cfg.DeviceToken = &DeviceTokenConfig{}
	}
	if cfg.DeviceToken.TTL <= 0 {
		cfg.DeviceToken.TTL = defaultDeviceTokenTTL
	}

	if cfg.Plans == nil {
		cfg.Plans = &PlansConfig{}
	}
	if cfg.Plans.FreeDeviceLimit <= 0 {
		cfg.Plans.FreeDeviceLimit = defaultFreeDeviceLimit
	}
	if cfg.Plans.PaidDeviceLimit < 0 {
		cfg.Plans.PaidDeviceLimit = 0
	}

	if cfg.Sync == nil {
		cfg.Sync = &SyncConfig{}
	}
	if cfg.Sync.CatchUpPageSize <= 0 {
		cfg.Sync.CatchUpPageSize = defaultCatchUpPageSize
	}
	if cfg.Sync.PollPageSize <= 0 {
		cfg.Sync.PollPageSize = defaultPollPageSize
	}
	if cfg.Sync.MaxPageSize <= 0 {
		cfg.Sync.MaxPageSize = defaultMaxPageSize
	}
	if cfg.Sync.PollInterval <= 0 {
		cfg.Sync.PollInterval = defaultPollInterval
	}
	if cfg.Sync.CacheLimit <= 0 {
		cfg.Sync.CacheLimit = defaultCacheLimit
	}

	if cfg.Bus == nil {
		cfg.Bus = &BusConfig{}
	}
	if cfg.Bus.SendBuffer <= 0 {
		cfg.Bus.SendBuffer = defaultBusSendBuffer
	}
	if cfg.Bus.WriteTimeout <= 0 {
		cfg.Bus.WriteTimeout = defaultBusWriteTimeout
	}
	if cfg.Bus.PingInterval <= 0 {
		cfg.Bus.PingInterval = defaultBusPingInterval
	}
	if cfg.Bus.ReconnectBase <= 0 {
		cfg.Bus.ReconnectBase = defaultReconnectBase
	}
	if cfg.Bus.ReconnectMax < cfg.Bus.ReconnectBase {
		cfg.Bus.ReconnectMax = max(defaultReconnectMax, cfg.Bus.ReconnectBase)
	}
	if cfg.Bus.ReconnectJitter < 0 || cfg.Bus.ReconnectJitter >= 1 {
		cfg.Bus.ReconnectJitter = defaultReconnectJitter
	}

	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = defaultPairingRateLimit
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = defaultPairingBurst
	}

	cfg.applyClientDefaults()
}

func (cfg *Config) applyClientDefaults() {
	if cfg.Client == nil {
		cfg.Client = &ClientConfig{}
	}
	if cfg.Client.ServerURL == "" {
		cfg.Client.ServerURL = defaultClientServerURL
	}
	if cfg.Client.DataDir == "" {
		cfg.Client.DataDir = defaultClientDataDir
	}
	if cfg.Client.DeviceName == "" {
		cfg.Client.DeviceName = defaultClientDeviceName
	}
	if cfg.Client.DeviceType == "" {
		cfg.Client.DeviceType = defaultClientDeviceType
	}
	if cfg.Client.Timeout <= 0 {
		cfg.Client.Timeout = defaultClientTimeout
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Format: POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
