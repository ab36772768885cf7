package configuration

import (
	"bufio"
	"os"
	"strings"
)

// LoadEnvFromFile reads KEY=VALUE lines from each existing file and exports
// them. Variables already set in the environment are left alone. It returns
// the names of the files that were found.
func LoadEnvFromFile(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		loaded = append(loaded, p)
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, val, ok := parseEnvLine(scanner.Text())
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
		_ = f.Close()
	}
	return loaded
}

func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	key, val, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(val), "\"'"), true
}
