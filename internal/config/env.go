package config

import (
	"os"
	"strconv"
	"strings"
)

// lookup gets an environment variable, comparing keys case-insensitively.
// A variable that is unset or only whitespace is reported as not found.
func lookup(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, kv := range os.Environ() {
		k, val, found := strings.Cut(kv, "=")
		if !found || strings.ToLower(k) != key {
			continue
		}
		val = strings.TrimSpace(val)
		if len(val) == 0 {
			return "", false
		}
		return val, true
	}
	return "", false
}

func envString(key string, defaultVal string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	sval, ok := lookup(key)
	if !ok {
		return defaultVal
	}
	ival, err := strconv.Atoi(sval)
	if err != nil {
		return defaultVal
	}
	return ival
}

var (
	truthy = []string{"1", "yes", "true", "on"}
	falsy  = []string{"0", "no", "false", "off"}
)

func envBool(key string, defaultVal bool) bool {
	sval, ok := lookup(key)
	if !ok {
		return defaultVal
	}
	sval = strings.ToLower(sval)
	for _, t := range truthy {
		if sval == t {
			return true
		}
	}
	for _, f := range falsy {
		if sval == f {
			return false
		}
	}
	return defaultVal
}
