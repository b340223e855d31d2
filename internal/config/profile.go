package config

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dshills/dataprotocol/internal/launch"
)

// Profile is a complete client description.
type Profile struct {
	// Name is the human readable client name.
	Name string `json:"name"`
	// ID keys configuration lookups such as <id>.trace.server.
	// Empty means the lower-cased name.
	ID       string         `json:"id"`
	Server   ServerConfig   `json:"server"`
	Client   ClientConfig   `json:"client"`
	Settings map[string]any `json:"settings"`
}

// ServerConfig describes how to launch the server. Exactly one of Command
// and Module is set.
type ServerConfig struct {
	Command   string            `json:"command"`
	Module    string            `json:"module"`
	Runtime   string            `json:"runtime"`
	Transport string            `json:"transport"`
	Args      []string          `json:"args"`
	ExecArgv  []string          `json:"execArgv"`
	Cwd       string            `json:"cwd"`
	Env       map[string]string `json:"env"`
	// Debug replaces the entry when the client runs in debug mode.
	Debug *ServerConfig `json:"debug"`
}

// ClientConfig holds client behavior.
type ClientConfig struct {
	ProviderID       string   `json:"providerId"`
	DocumentSelector []string `json:"documentSelector"`
	// Synchronize lists the configuration sections sent to the server.
	Synchronize []string `json:"synchronize"`
	// FileEvents lists glob patterns whose changes are forwarded.
	FileEvents            []string `json:"fileEvents"`
	RevealOutputChannelOn string   `json:"revealOutputChannelOn"`
	Trace                 string   `json:"trace"`
	ForceDebug            bool     `json:"forceDebug"`
	HostName              string   `json:"hostName"`
	HostVersion           string   `json:"hostVersion"`

	MaxConsecutiveErrors int      `json:"maxConsecutiveErrors"`
	MaxRestarts          int      `json:"maxRestarts"`
	RestartWindow        Duration `json:"restartWindow"`
	DocumentSyncDelay    Duration `json:"documentSyncDelay"`
	FileEventDelay       Duration `json:"fileEventDelay"`
}

// Duration decodes from "250ms" style strings or integer nanoseconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalJSON encodes d as a duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "duration %q", s)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Newf("duration must be a string or integer, got %s", b)
	}
	*d = Duration(n)
	return nil
}

// DefaultClientConfig returns the client defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RevealOutputChannelOn: "error",
		Trace:                 "off",
		HostName:              "dpclient",
		MaxConsecutiveErrors:  3,
		MaxRestarts:           5,
		RestartWindow:         Duration(3 * time.Minute),
		DocumentSyncDelay:     Duration(100 * time.Millisecond),
		FileEventDelay:        Duration(250 * time.Millisecond),
	}
}

// DefaultProfile returns an empty profile with client defaults.
func DefaultProfile() *Profile {
	return &Profile{
		Name:     "dataprotocol",
		Client:   DefaultClientConfig(),
		Settings: map[string]any{},
	}
}

// ClientID returns ID, or the lower-cased name.
func (p *Profile) ClientID() string {
	if p.ID != "" {
		return p.ID
	}
	return strings.ToLower(p.Name)
}

// SettingsJSON returns the settings as a JSON object.
func (p *Profile) SettingsJSON() ([]byte, error) {
	if p.Settings == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(p.Settings)
	return b, errors.Wrap(err, "encode settings")
}

// ServerOptions converts the server entry into launch options.
func (p *Profile) ServerOptions() (launch.ServerOptions, error) {
	run, err := p.Server.options("server")
	if err != nil {
		return nil, err
	}
	if p.Server.Debug == nil {
		return run, nil
	}
	debug, err := p.Server.Debug.options("server.debug")
	if err != nil {
		return nil, err
	}
	return launch.RunDebug{Run: run, Debug: debug}, nil
}

func (s *ServerConfig) options(field string) (launch.ServerOptions, error) {
	switch {
	case s.Command != "" && s.Module != "":
		return nil, &ValidationError{Field: field, Err: ErrBadServer}
	case s.Command != "":
		return launch.Executable{
			Command: s.Command,
			Args:    s.Args,
			Options: launch.ExecutableOptions{Cwd: s.Cwd, Env: s.Env},
		}, nil
	case s.Module != "":
		transport, ok := launch.ParseTransportKind(s.Transport)
		if !ok {
			return nil, &ValidationError{Field: field + ".transport", Err: errors.Newf("unknown transport %q", s.Transport)}
		}
		return launch.Module{
			Path:      s.Module,
			Runtime:   s.Runtime,
			Args:      s.Args,
			Transport: transport,
			Options:   launch.ForkOptions{Cwd: s.Cwd, Env: s.Env, ExecArgv: s.ExecArgv},
		}, nil
	}
	return nil, &ValidationError{Field: field, Err: ErrNoServer}
}

var revealValues = map[string]bool{"info": true, "warn": true, "error": true, "never": true}

var traceValues = map[string]bool{"off": true, "messages": true, "verbose": true}

// Validate checks the profile for values the client cannot use.
func (p *Profile) Validate() error {
	if _, err := p.ServerOptions(); err != nil {
		return err
	}
	c := p.Client
	if !revealValues[strings.ToLower(c.RevealOutputChannelOn)] {
		return &ValidationError{Field: "client.revealOutputChannelOn", Err: errors.Newf("unknown value %q", c.RevealOutputChannelOn)}
	}
	if !traceValues[strings.ToLower(c.Trace)] {
		return &ValidationError{Field: "client.trace", Err: errors.Newf("unknown value %q", c.Trace)}
	}
	if c.MaxConsecutiveErrors < 1 {
		return &ValidationError{Field: "client.maxConsecutiveErrors", Err: errors.New("must be at least 1")}
	}
	if c.MaxRestarts < 1 {
		return &ValidationError{Field: "client.maxRestarts", Err: errors.New("must be at least 1")}
	}
	if c.RestartWindow <= 0 {
		return &ValidationError{Field: "client.restartWindow", Err: errors.New("must be positive")}
	}
	return nil
}
