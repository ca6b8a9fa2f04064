package dotEnvLoader

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader merges a .env file (when present) into the process
// environment and returns the result.
type DotEnvLoader struct{}

func (l DotEnvLoader) Load() (map[string]string, error) {
	_ = godotenv.Load()
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		key, val, _ := strings.Cut(env, "=")
		envs[key] = val
	}
	return envs, nil
}
