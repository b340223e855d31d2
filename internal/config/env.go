package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes the environment variables read by EnvLoader.
const EnvPrefix = "DPCLIENT_"

// EnvLoader reads profile overrides from the environment.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // variable -> dotted profile path
	environ func() []string
}

// NewEnvLoader returns a loader for variables starting with prefix, which
// includes the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "SERVER_COMMAND":   "server.command",
		prefix + "SERVER_MODULE":    "server.module",
		prefix + "SERVER_RUNTIME":   "server.runtime",
		prefix + "SERVER_TRANSPORT": "server.transport",
		prefix + "SERVER_CWD":       "server.cwd",
		prefix + "PROVIDER_ID":      "client.providerId",
		prefix + "TRACE":            "client.trace",
		prefix + "REVEAL_OUTPUT":    "client.revealOutputChannelOn",
	}
}

// AddMapping maps a variable to a dotted profile path.
func (l *EnvLoader) AddMapping(envVar, path string) {
	l.mapping[envVar] = path
}

// Load returns the overrides found in the environment. Empty values are
// kept as empty strings.
func (l *EnvLoader) Load() map[string]any {
	out := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(out, path, parseEnvValue(value))
	}
	return out
}

// envToPath turns DPCLIENT_CLIENT_MAX_RESTARTS into client.maxRestarts.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	name := strings.ToLower(parts[1])
	for _, p := range parts[2:] {
		if p != "" {
			name += strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + name
}

func parseEnvValue(s string) any {
	switch strings.ToLower(s) {
	case "":
		return s
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}

func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := data
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
