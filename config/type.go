package config

type Config struct {
	DB        DBConfig        `json:"db"  yaml:"db"`
	Logger    LoggerConfig    `json:"logger"  yaml:"logger"`
	Server    ServerConfig    `json:"server"  yaml:"server"`
	Scheduler SchedulerConfig `json:"scheduler"  yaml:"scheduler"`
	Stream    StreamConfig    `json:"stream"  yaml:"stream"`
	Agent     AgentConfig     `json:"agent"  yaml:"agent"`
}

type DBConfig struct {
	Host     string `json:"host"  yaml:"host"`
	Port     uint   `json:"port"  yaml:"port"`
	Username string `json:"username"  yaml:"username"`
	Password string `json:"password"  yaml:"password"`
	Database string `json:"database"  yaml:"database"`
}

type ServerConfig struct {
	HttpPort   uint   `json:"httpPort"  yaml:"httpPort"`
	Secret     string `json:"secret"  yaml:"secret"`
	SslEnabled bool   `json:"sslEnabled"  yaml:"sslEnabled"`
	Key        string `json:"key"  yaml:"key"`
	Cert       string `json:"cert"  yaml:"cert"`
}

type LoggerConfig struct {
	Level  string `json:"level"  yaml:"level"`
	Output string `json:"output"  yaml:"output"`
	Path   string `json:"path"  yaml:"path"`
}

// SchedulerConfig controls the in-process periodic sweep loop. Disable it when
// an external cron drives sweeps through the CLI or the HTTP endpoint.
type SchedulerConfig struct {
	Enabled              *bool `json:"enabled"  yaml:"enabled"`
	CheckIntervalSeconds uint  `json:"checkIntervalSeconds"  yaml:"checkIntervalSeconds"`
}

type StreamConfig struct {
	IntervalMillis  uint `json:"intervalMillis"  yaml:"intervalMillis"`
	MaxRetries      uint `json:"maxRetries"  yaml:"maxRetries"`
	RetryBaseMillis uint `json:"retryBaseMillis"  yaml:"retryBaseMillis"`
}

type AgentConfig struct {
	// KeyHash is the bcrypt hash of the key the agent sends in X-Agent-Key.
	KeyHash             string `json:"keyHash"  yaml:"keyHash"`
	HeartbeatPath       string `json:"heartbeatPath"  yaml:"heartbeatPath"`
	HeartbeatTTLSeconds uint   `json:"heartbeatTTLSeconds"  yaml:"heartbeatTTLSeconds"`
}

func (c SchedulerConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c Config) withDefaults() Config {
	if c.Server.HttpPort == 0 {
		c.Server.HttpPort = 8080
	}
	if c.Scheduler.CheckIntervalSeconds == 0 {
		c.Scheduler.CheckIntervalSeconds = 60
	}
	if c.Stream.IntervalMillis == 0 {
		c.Stream.IntervalMillis = 1000
	}
	if c.Stream.MaxRetries == 0 {
		c.Stream.MaxRetries = 3
	}
	if c.Stream.RetryBaseMillis == 0 {
		c.Stream.RetryBaseMillis = 100
	}
	if c.Agent.HeartbeatPath == "" {
		c.Agent.HeartbeatPath = "/data/agent_heartbeat.json"
	}
	if c.Agent.HeartbeatTTLSeconds == 0 {
		c.Agent.HeartbeatTTLSeconds = 30
	}
	return c
}
