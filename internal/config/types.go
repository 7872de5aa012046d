package config

import "time"

// BookmarkBackend selects where resume positions are kept.
type BookmarkBackend string

const (
	BookmarkFile  BookmarkBackend = "file"
	BookmarkRedis BookmarkBackend = "redis"
)

// Config is the top-level matrixdeck configuration, corresponding to matrixdeck.yml.
type Config struct {
	Timing   TimingConfig   `yaml:"timing" koanf:"timing"`
	Rain     RainConfig     `yaml:"rain" koanf:"rain"`
	Audio    AudioConfig    `yaml:"audio" koanf:"audio"`
	Remote   RemoteConfig   `yaml:"remote" koanf:"remote"`
	Bookmark BookmarkConfig `yaml:"bookmark" koanf:"bookmark"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// TimingConfig holds the scheduling constants of navigation.
type TimingConfig struct {
	Settle         time.Duration `yaml:"settle" koanf:"settle"`
	Stagger        time.Duration `yaml:"stagger" koanf:"stagger"`
	ResizeDebounce time.Duration `yaml:"resize_debounce" koanf:"resize_debounce"`
	Frame          time.Duration `yaml:"frame" koanf:"frame"`
}

// RainConfig holds the title effect constants.
type RainConfig struct {
	ColumnWidth      int           `yaml:"column_width" koanf:"column_width"`
	SpawnMin         time.Duration `yaml:"spawn_min" koanf:"spawn_min"`
	SpawnMax         time.Duration `yaml:"spawn_max" koanf:"spawn_max"`
	Lifetime         time.Duration `yaml:"lifetime" koanf:"lifetime"`
	FallMin          time.Duration `yaml:"fall_min" koanf:"fall_min"`
	FallMax          time.Duration `yaml:"fall_max" koanf:"fall_max"`
	DelayMax         time.Duration `yaml:"delay_max" koanf:"delay_max"`
	OpacityMin       float64       `yaml:"opacity_min" koanf:"opacity_min"`
	OpacityMax       float64       `yaml:"opacity_max" koanf:"opacity_max"`
	ContainerOpacity float64       `yaml:"container_opacity" koanf:"container_opacity"`
	Charset          string        `yaml:"charset" koanf:"charset"`
}

// AudioConfig holds the cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" koanf:"enabled"`
	Volume  float64 `yaml:"volume" koanf:"volume"`
}

// RemoteConfig holds the remote control API settings. An empty Addr disables it,
// and an empty MCPAddr disables the MCP server.
type RemoteConfig struct {
	Addr            string `yaml:"addr" koanf:"addr"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	MCPAddr         string `yaml:"mcp_addr" koanf:"mcp_addr"`
}

// BookmarkConfig holds the resume store settings.
type BookmarkConfig struct {
	Backend   BookmarkBackend `yaml:"backend" koanf:"backend"`
	Dir       string          `yaml:"dir" koanf:"dir"`
	RedisAddr string          `yaml:"redis_addr" koanf:"redis_addr"`
}

// LogConfig holds the logger settings. An empty File discards logs while the screen is owned.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file" koanf:"file"`
}
