package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/notehub/note-hub-service/pkg/storage"
	"github.com/notehub/note-hub-service/pkg/util"
	"github.com/notehub/note-hub-service/pkg/workerpool"
)

// AppConfig is the full service configuration.
type AppConfig struct {
	File     string         `yaml:"-"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	User     UserConfig     `yaml:"user"`
	Security SecurityConfig `yaml:"security"`
	Storage  storage.Config `yaml:"storage"`
	Tracer   TracerConfig   `yaml:"tracer"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level follows zapcore.ParseLevel.
	Level string `yaml:"level" default:"info"`
	// File is the log file path, stderr when empty.
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production toggles JSON output.
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig configures the HTTP listeners.
type ServerConfig struct {
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort is the public listen address.
	HttpPort     string `yaml:"http-port" default:":9000"`
	ReadTimeout  int    `yaml:"read-timeout" default:"60"`
	WriteTimeout int    `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen serves metrics, health and pprof.
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// SecurityConfig configures auth tokens.
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"note-hub-Auth-Token"`
	// TokenExpiry accepts 7d, 24h, 30m style values.
	TokenExpiry string `yaml:"token-expiry" default:"7d"`
}

// DatabaseConfig configures the gorm engine.
type DatabaseConfig struct {
	Type        string `yaml:"type" default:"sqlite"`
	Path        string `yaml:"path" default:"storage/database/db.sqlite3"`
	UserName    string `yaml:"username"`
	Password    string `yaml:"password"`
	Host        string `yaml:"host"`
	Name        string `yaml:"name"`
	TablePrefix string `yaml:"table-prefix"`
	AutoMigrate bool   `yaml:"auto-migrate" default:"true"`
	Charset     string `yaml:"charset"`
	ParseTime   bool   `yaml:"parse-time"`
	// ReplicaHosts lists read replicas for mysql/postgres.
	ReplicaHosts    []string `yaml:"replica-hosts"`
	MaxIdleConns    int      `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns    int      `yaml:"max-open-conns" default:"100"`
	ConnMaxLifetime string   `yaml:"conn-max-lifetime" default:"30m"`
	ConnMaxIdleTime string   `yaml:"conn-max-idle-time" default:"10m"`
}

// UserConfig configures accounts.
type UserConfig struct {
	RegisterIsEnable bool `yaml:"register-is-enable" default:"true"`
}

// AppSettings holds behavior settings.
type AppSettings struct {
	DefaultPageSize       int `yaml:"default-page-size" default:"10"`
	MaxPageSize           int `yaml:"max-page-size" default:"100"`
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`

	// ShareBaseURL prefixes generated share links.
	ShareBaseURL string `yaml:"share-base-url"`
	// ExploreLimit caps the public feed size.
	ExploreLimit int `yaml:"explore-limit" default:"50"`
	// PopularTagLimit caps the popular tag list.
	PopularTagLimit int `yaml:"popular-tag-limit" default:"10"`

	// UploadMaxSizeMB caps image uploads.
	UploadMaxSizeMB int `yaml:"upload-max-size-mb" default:"10"`
	// UploadAllowExts lists accepted image extensions.
	UploadAllowExts []string `yaml:"upload-allow-exts"`
	// UploadURLPrefix prefixes returned image URLs.
	UploadURLPrefix string `yaml:"upload-url-prefix"`

	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// OrphanCleanupInterval schedules the dependent sweep, 0 or empty
	// disables it.
	OrphanCleanupInterval string `yaml:"orphan-cleanup-interval" default:"1h"`
	// CollectionRecountInterval schedules the noteCount repair.
	CollectionRecountInterval string `yaml:"collection-recount-interval" default:"6h"`
}

// TracerConfig configures request tracing.
type TracerConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Header  string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig reads the configuration file and fills defaults. Returns
// the config and the resolved absolute path.
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c := new(AppConfig)
	c.File = realpath

	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// defaults.Set only fills zero values, run again for fields the
	// YAML left empty
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	return c, realpath, nil
}

// Save writes the configuration back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return errors.Wrap(err, "write config file failed")
	}
	return nil
}

// GetWorkerPoolConfig maps the settings onto a worker pool config.
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()

	if c.App.WorkerPoolMaxWorkers > 0 {
		cfg.MaxWorkers = c.App.WorkerPoolMaxWorkers
	}
	if c.App.WorkerPoolQueueSize > 0 {
		cfg.QueueSize = c.App.WorkerPoolQueueSize
	}
	return cfg
}

// GetTokenExpiry returns the parsed token lifetime.
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil {
		return expiry
	}
	return 7 * 24 * time.Hour
}

// GetOrphanCleanupInterval returns the parsed sweep interval, 0 when
// disabled.
func (c *AppConfig) GetOrphanCleanupInterval() time.Duration {
	if c.App.OrphanCleanupInterval == "" || c.App.OrphanCleanupInterval == "0" {
		return 0
	}
	if interval, err := util.ParseDuration(c.App.OrphanCleanupInterval); err == nil {
		return interval
	}
	return time.Hour
}

// GetCollectionRecountInterval returns the parsed recount interval, 0
// when disabled.
func (c *AppConfig) GetCollectionRecountInterval() time.Duration {
	if c.App.CollectionRecountInterval == "" || c.App.CollectionRecountInterval == "0" {
		return 0
	}
	if interval, err := util.ParseDuration(c.App.CollectionRecountInterval); err == nil {
		return interval
	}
	return 6 * time.Hour
}
