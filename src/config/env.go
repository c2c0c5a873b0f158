package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
)

// getEnvWithParser returns the parsed value of key, or defaultVal when the
// variable is unset or cannot be parsed.
func getEnvWithParser[T any](key string, defaultVal T, parser func(string) (T, error)) T {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}

	parsedValue, err := parser(valueStr)
	if err != nil {
		slog.Warn(fmt.Sprintf("Failed to parse environment variable as %s, using default value", reflect.TypeOf(defaultVal)),
			"key", key, "rawValue", valueStr, "error", err, "defaultValue", defaultVal)
		return defaultVal
	}

	slog.Debug("Loaded environment variable", "key", key, "value", parsedValue)
	return parsedValue
}

func GetEnvString(key string, defaultVal string) string {
	return getEnvWithParser(key, defaultVal, func(s string) (string, error) { return s, nil })
}

func GetEnvBool(key string, defaultVal bool) bool {
	return getEnvWithParser(key, defaultVal, strconv.ParseBool)
}
