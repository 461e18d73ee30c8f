package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"ssdps/ssdps_config"
)

var DefaultPath = "./config"
var DebugPath = "./config/debug"

var current atomic.Pointer[AllConfig]

// AllConfig 全部配置
type AllConfig struct {
	Server ServerConfig `mapstructure:"server_config"`
	Logger LoggerConfig `mapstructure:"logger_config"`
	Mining MiningConfig `mapstructure:"mining_config"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HttpPort  string `mapstructure:"http_port"`
	SentryDsn string `mapstructure:"sentry_dsn"`
	// DataDir matrix files named in requests are resolved below it
	DataDir string `mapstructure:"data_dir"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string        `mapstructure:"level"`
	Path         string        `mapstructure:"path"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
	RotationSize uint32        `mapstructure:"rotation_size"`
}

// MiningConfig default mining parameters, supports in percent of the class sizes
type MiningConfig struct {
	OrThreshold  float64 `mapstructure:"or_threshold"`
	RrThreshold  float64 `mapstructure:"rr_threshold"`
	ArrThreshold float64 `mapstructure:"arr_threshold"`
	MinCase      float64 `mapstructure:"min_case"`
	MaxControl   float64 `mapstructure:"max_control"`
	MinCaseOut   int     `mapstructure:"min_case_out"`
	PValue       float64 `mapstructure:"p_value"`
	Iteration    int     `mapstructure:"iteration"`
	Method       string  `mapstructure:"method"`
	RatchetOR    bool    `mapstructure:"ratchet_or"`
}

// All 当前配置
func All() *AllConfig {
	if c := current.Load(); c != nil {
		return c
	}
	return Defaults()
}

// Defaults the built-in configuration used when no file is present
func Defaults() *AllConfig {
	return &AllConfig{
		Server: ServerConfig{HttpPort: ssdps_config.GinPort, DataDir: ssdps_config.DataDir},
		Logger: LoggerConfig{
			Level:        ssdps_config.LogLevel,
			Path:         ssdps_config.LogPath,
			MaxAge:       ssdps_config.LogMaxAge,
			RotationTime: ssdps_config.LogRotationTime,
			RotationSize: ssdps_config.LogRotationSize,
		},
		Mining: MiningConfig{
			OrThreshold:  ssdps_config.OddsRatioThreshold,
			RrThreshold:  ssdps_config.RiskRatioThreshold,
			ArrThreshold: ssdps_config.AbsRiskThreshold,
			MinCase:      ssdps_config.MinCasePct,
			MaxControl:   ssdps_config.MaxControlPct,
			MinCaseOut:   ssdps_config.MinCaseOut,
			PValue:       ssdps_config.PValue,
			Iteration:    1,
			Method:       ssdps_config.Method,
			RatchetOR:    ssdps_config.RatchetOR,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server_config.http_port", d.Server.HttpPort)
	v.SetDefault("server_config.sentry_dsn", d.Server.SentryDsn)
	v.SetDefault("server_config.data_dir", d.Server.DataDir)
	v.SetDefault("logger_config.level", d.Logger.Level)
	v.SetDefault("logger_config.path", d.Logger.Path)
	v.SetDefault("logger_config.max_age", int64(d.Logger.MaxAge))
	v.SetDefault("logger_config.rotation_time", int64(d.Logger.RotationTime))
	v.SetDefault("logger_config.rotation_size", d.Logger.RotationSize)
	v.SetDefault("mining_config.or_threshold", d.Mining.OrThreshold)
	v.SetDefault("mining_config.rr_threshold", d.Mining.RrThreshold)
	v.SetDefault("mining_config.arr_threshold", d.Mining.ArrThreshold)
	v.SetDefault("mining_config.min_case", d.Mining.MinCase)
	v.SetDefault("mining_config.max_control", d.Mining.MaxControl)
	v.SetDefault("mining_config.min_case_out", d.Mining.MinCaseOut)
	v.SetDefault("mining_config.p_value", d.Mining.PValue)
	v.SetDefault("mining_config.iteration", d.Mining.Iteration)
	v.SetDefault("mining_config.method", d.Mining.Method)
	v.SetDefault("mining_config.ratchet_or", d.Mining.RatchetOR)
}

// Load reads config.yml from dir on top of the defaults. A missing file is not an error.
// With DEBUG=true, DebugPath/debug.yml is merged over it.
func Load(dir string) (*AllConfig, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config in %s: %w", dir, err)
		}
	}

	if os.Getenv("DEBUG") == "true" {
		debugFile := filepath.Join(DebugPath, "debug.yml")
		if exists, _ := isExists(debugFile); exists {
			v.SetConfigFile(debugFile)
			if err := v.MergeInConfig(); err != nil {
				return nil, nil, fmt.Errorf("merge %s: %w", debugFile, err)
			}
		}
	}

	all := &AllConfig{}
	if err := v.Unmarshal(all); err != nil {
		return nil, nil, err
	}
	return all, v, nil
}

// InitConfig 初始化读取配置文件，配置文件变化时热加载
func InitConfig(dir string) *AllConfig {
	if dir == "" {
		dir = DefaultPath
	}
	all, v, err := Load(dir)
	if err != nil {
		panic(err)
	}
	current.Store(all)

	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			log.Printf("Config file changed: %s", e.Name)
			reloaded := &AllConfig{}
			if err := v.Unmarshal(reloaded); err != nil {
				log.Printf("reload config failed, err: %v", err)
				return
			}
			current.Store(reloaded)
		})
		v.WatchConfig()
	}
	return all
}

func isExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
