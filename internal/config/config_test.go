package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dshills/dataprotocol/internal/launch"
)

// memFS is an in-memory file system for tests.
type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func noEnv() []string { return nil }

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml", FormatTOML, "[server]\ncommand = \"svc\"\n"},
		{"yaml", FormatYAML, "server:\n  command: svc\n"},
		{"json", FormatJSON, `{"server": {"command": "svc"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.name, tt.format, []byte(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			server, ok := cfg["server"].(map[string]any)
			if !ok {
				t.Fatalf("expected server map, got %T", cfg["server"])
			}
			if server["command"] != "svc" {
				t.Errorf("expected command svc, got %v", server["command"])
			}
		})
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("bad.toml", FormatTOML, []byte("[server\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "bad.toml" || perr.Format != FormatTOML {
		t.Errorf("unexpected parse error fields: %+v", perr)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.toml": FormatTOML,
		"a.YML":  FormatYAML,
		"a.yaml": FormatYAML,
		"a.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		if err != nil || got != want {
			t.Errorf("FormatOf(%s): expected %v, got %v (%v)", path, want, got, err)
		}
	}
	if _, err := FormatOf("a.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoaderIncludes(t *testing.T) {
	fsys := memFS{
		"/cfg/main.toml": `
"@include" = ["base.yaml", "/shared/settings.json"]
[server]
command = "main"
[settings.mssql]
format = "on"
`,
		"/cfg/base.yaml": `
server:
  command: base
  args: ["--a"]
client:
  providerId: MSSQL
`,
		"/shared/settings.json": `{"settings": {"mssql": {"format": "off", "intelliSense": true}}}`,
	}

	cfg, err := NewLoader(fsys).Load("/cfg/main.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cfg["@include"]; ok {
		t.Error("expected @include to be removed")
	}
	server := cfg["server"].(map[string]any)
	if server["command"] != "main" {
		t.Errorf("expected including file to win, got %v", server["command"])
	}
	if args, _ := server["args"].([]any); len(args) != 1 {
		t.Errorf("expected args from include, got %v", server["args"])
	}
	mssql := cfg["settings"].(map[string]any)["mssql"].(map[string]any)
	if mssql["format"] != "on" || mssql["intelliSense"] != true {
		t.Errorf("expected merged settings, got %v", mssql)
	}
}

func TestLoaderIncludeCycle(t *testing.T) {
	fsys := memFS{
		"/a.toml": `"@include" = "b.toml"`,
		"/b.toml": `"@include" = "a.toml"`,
	}
	_, err := NewLoader(fsys).Load("/a.toml")
	if !errors.Is(err, ErrIncludeDepth) {
		t.Errorf("expected ErrIncludeDepth, got %v", err)
	}
}

func TestLoaderMissing(t *testing.T) {
	_, err := NewLoader(memFS{}).Load("/missing.toml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 1}
	src := map[string]any{"a": map[string]any{"y": 3}, "b": map[string]any{"z": 1}}
	got := DeepMerge(dst, src)

	a := got["a"].(map[string]any)
	if a["x"] != 1 || a["y"] != 3 {
		t.Errorf("expected nested merge, got %v", a)
	}
	if _, ok := got["b"].(map[string]any); !ok {
		t.Errorf("expected map to replace scalar, got %v", got["b"])
	}

	// src values are copied
	src["a"].(map[string]any)["y"] = 99
	if a["y"] != 3 {
		t.Error("expected merged value to be independent of src")
	}
}

func TestEnvLoader(t *testing.T) {
	l := NewEnvLoader("DPCLIENT_")
	l.environ = func() []string {
		return []string{
			"DPCLIENT_SERVER_COMMAND=/usr/bin/svc",
			"DPCLIENT_PROVIDER_ID=MSSQL",
			"DPCLIENT_CLIENT_MAX_RESTARTS=7",
			"DPCLIENT_CLIENT_FORCE_DEBUG=yes",
			"DPCLIENT_CLIENT_DOCUMENT_SELECTOR=[\"sql\"]",
			"DPCLIENT_ALONE=x",
			"OTHER=1",
		}
	}
	cfg := l.Load()

	server := cfg["server"].(map[string]any)
	if server["command"] != "/usr/bin/svc" {
		t.Errorf("expected mapped command, got %v", server["command"])
	}
	client := cfg["client"].(map[string]any)
	if client["providerId"] != "MSSQL" {
		t.Errorf("expected providerId, got %v", client["providerId"])
	}
	if client["maxRestarts"] != int64(7) {
		t.Errorf("expected maxRestarts 7, got %v (%T)", client["maxRestarts"], client["maxRestarts"])
	}
	if client["forceDebug"] != true {
		t.Errorf("expected forceDebug true, got %v", client["forceDebug"])
	}
	if sel, _ := client["documentSelector"].([]any); len(sel) != 1 {
		t.Errorf("expected selector list, got %v", client["documentSelector"])
	}
	if _, ok := cfg["alone"]; ok {
		t.Error("expected single-part variable to be ignored")
	}
}

func TestParseEnvValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"on", true},
		{"OFF", false},
		{"1", int64(1)},
		{"1.5", 1.5},
		{"250ms", "250ms"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := parseEnvValue(tt.in); got != tt.want {
			t.Errorf("parseEnvValue(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestLoadProfile(t *testing.T) {
	fsys := memFS{
		"/p.toml": `
name = "MSSQL"
[server]
module = "/srv/main.js"
runtime = "node"
transport = "ipc"
execArgv = ["--max-old-space-size=2048"]
[client]
providerId = "MSSQL"
documentSelector = ["sql"]
synchronize = ["mssql"]
restartWindow = "1m"
[settings.mssql]
trace.server = "verbose"
`,
	}
	environ := func() []string { return []string{"DPCLIENT_CLIENT_MAX_RESTARTS=2"} }

	p, err := LoadProfile("/p.toml", WithFileSystem(fsys), WithEnviron(environ))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ClientID() != "mssql" {
		t.Errorf("expected id mssql, got %s", p.ClientID())
	}
	if p.Client.MaxRestarts != 2 {
		t.Errorf("expected env override 2, got %d", p.Client.MaxRestarts)
	}
	if p.Client.MaxConsecutiveErrors != 3 {
		t.Errorf("expected default 3, got %d", p.Client.MaxConsecutiveErrors)
	}
	if p.Client.RestartWindow.Std() != time.Minute {
		t.Errorf("expected 1m, got %v", p.Client.RestartWindow.Std())
	}
	if p.Client.DocumentSyncDelay.Std() != 100*time.Millisecond {
		t.Errorf("expected default sync delay, got %v", p.Client.DocumentSyncDelay.Std())
	}

	opts, err := p.ServerOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := opts.(launch.Module)
	if !ok {
		t.Fatalf("expected Module, got %T", opts)
	}
	if m.Transport != launch.TransportIPC || m.Runtime != "node" || len(m.Options.ExecArgv) != 1 {
		t.Errorf("unexpected module options: %+v", m)
	}

	settings, err := p.SettingsJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(settings) != `{"mssql":{"trace":{"server":"verbose"}}}` {
		t.Errorf("unexpected settings %s", settings)
	}
}

func TestProfileServerOptions(t *testing.T) {
	tests := []struct {
		name    string
		server  ServerConfig
		want    string
		wantErr error
	}{
		{"executable", ServerConfig{Command: "svc"}, "launch.Executable", nil},
		{"module", ServerConfig{Module: "m.js"}, "launch.Module", nil},
		{"debug", ServerConfig{Command: "svc", Debug: &ServerConfig{Command: "svc-debug"}}, "launch.RunDebug", nil},
		{"none", ServerConfig{}, "", ErrNoServer},
		{"both", ServerConfig{Command: "a", Module: "b"}, "", ErrBadServer},
		{"bad debug", ServerConfig{Command: "a", Debug: &ServerConfig{}}, "", ErrNoServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			p.Server = tt.server
			opts, err := p.ServerOptions()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := typeName(opts); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case launch.Executable:
		return "launch.Executable"
	case launch.Module:
		return "launch.Module"
	case launch.RunDebug:
		return "launch.RunDebug"
	}
	return ""
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Profile)
		field string
	}{
		{"reveal", func(p *Profile) { p.Client.RevealOutputChannelOn = "loud" }, "client.revealOutputChannelOn"},
		{"trace", func(p *Profile) { p.Client.Trace = "all" }, "client.trace"},
		{"errors", func(p *Profile) { p.Client.MaxConsecutiveErrors = 0 }, "client.maxConsecutiveErrors"},
		{"window", func(p *Profile) { p.Client.RestartWindow = 0 }, "client.restartWindow"},
		{"transport", func(p *Profile) { p.Server = ServerConfig{Module: "m", Transport: "tcp"} }, "server.transport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			p.Server.Command = "svc"
			tt.edit(p)
			var verr *ValidationError
			if err := p.Validate(); !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("expected validation error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestLoadProfileEnvOnly(t *testing.T) {
	environ := func() []string { return []string{"DPCLIENT_SERVER_COMMAND=svc"} }
	p, err := LoadProfile("", WithEnviron(environ))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Server.Command != "svc" {
		t.Errorf("expected command from env, got %q", p.Server.Command)
	}

	if _, err := LoadProfile("", WithoutEnv()); !errors.Is(err, ErrNoServer) {
		t.Errorf("expected ErrNoServer without env, got %v", err)
	}
}

func TestDurationJSON(t *testing.T) {
	var d Duration
	if err := d.UnmarshalJSON([]byte(`"2s"`)); err != nil || d.Std() != 2*time.Second {
		t.Errorf("expected 2s, got %v (%v)", d.Std(), err)
	}
	if err := d.UnmarshalJSON([]byte(`1000`)); err != nil || d.Std() != time.Microsecond {
		t.Errorf("expected 1µs, got %v (%v)", d.Std(), err)
	}
	if err := d.UnmarshalJSON([]byte(`"soon"`)); err == nil {
		t.Error("expected error for bad duration")
	}
	b, _ := Duration(time.Second).MarshalJSON()
	if string(b) != `"1s"` {
		t.Errorf("expected \"1s\", got %s", b)
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(path, []byte("settings:\n  mssql:\n    enabled: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"mssql":{"enabled":true}}` {
		t.Errorf("unexpected settings %s", got)
	}

	if err := os.WriteFile(path, []byte("server:\n  command: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _ = LoadSettings(path)
	if strings.TrimSpace(string(got)) != "{}" {
		t.Errorf("expected empty settings, got %s", got)
	}
}
