package cli

import (
	"os"
	"strconv"
)

const (
	EnvBatchConfig = "UNPACKER_BATCH_CONFIG"
	EnvConcurrency = "UNPACKER_CONCURRENCY"
	EnvLogLevel    = "UNPACKER_LOG_LEVEL"
	EnvNoColor     = "UNPACKER_NO_COLOR" // defaults to false
	EnvOverwrite   = "UNPACKER_OVERWRITE" // defaults to false
)

var (
	DefaultLogLevel = "info"

	batchConfig = os.Getenv(EnvBatchConfig)
	concurrency = intEnv(EnvConcurrency)
	logLevel    = envOrDefault(EnvLogLevel, DefaultLogLevel)
	noColor     = boolEnv(EnvNoColor)
	overwrite   = boolEnv(EnvOverwrite)
)

func boolEnv(k string) bool {
	v := os.Getenv(k)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

func envOrDefault(key string, defaultVal string) string {
	if envVal := os.Getenv(key); envVal != "" {
		return envVal
	}
	return defaultVal
}

func intEnv(k string) int {
	v := os.Getenv(k)
	d, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return d
}
