package config

type LogConfig interface {
	GetLogLevel() string
	GetLogFormat() string
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

var _ LogConfig = Log{}

func (l Log) GetLogLevel() string {
	return l.Level
}

func (l Log) GetLogFormat() string {
	return l.Format
}
