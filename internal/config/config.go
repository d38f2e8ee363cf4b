package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Separator   string
	Encoding    string
	MappingPath string
	LogLevel    string

	MySQLHost      string
	MySQLPort      int
	MySQLUser      string
	MySQLPassword  string
	MySQLDB        string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
	SinkChunk      int
}

// Load reads the environment, after loading .env if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional

	return &Config{
		Separator:   getenv("ROWMAP_SEPARATOR", ";"),
		Encoding:    getenv("ROWMAP_ENCODING", "UTF-8"),
		MappingPath: getenv("ROWMAP_MAPPING", ""),
		LogLevel:    getenv("ROWMAP_LOG_LEVEL", "info"),

		MySQLHost:      getenv("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:      getenvInt("MYSQL_PORT", 3306),
		MySQLUser:      getenv("MYSQL_USER", "root"),
		MySQLPassword:  getenv("MYSQL_PASSWORD", ""),
		MySQLDB:        getenv("MYSQL_DB", "rowmap"),
		ConnectTimeout: time.Duration(getenvInt("DB_CONNECT_TIMEOUT", 5)) * time.Second,
		QueryTimeout:   time.Duration(getenvInt("DB_QUERY_TIMEOUT", 30)) * time.Second,
		SinkChunk:      getenvInt("SINK_CHUNK", 2000),
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
