package config

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

type loadOptions struct {
	fs      FileSystem
	env     *EnvLoader
	environ func() []string
}

// Option configures LoadProfile.
type Option func(*loadOptions)

// WithFileSystem reads profile files from fsys.
func WithFileSystem(fsys FileSystem) Option {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithEnviron replaces os.Environ as the source of overrides.
func WithEnviron(environ func() []string) Option {
	return func(o *loadOptions) { o.environ = environ }
}

// WithoutEnv disables environment overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) { o.env = nil }
}

// LoadProfile reads the profile at path, applies DPCLIENT_* overrides,
// fills defaults and validates the result. An empty path loads only the
// environment.
func LoadProfile(path string, opts ...Option) (*Profile, error) {
	o := &loadOptions{env: NewEnvLoader(EnvPrefix)}
	for _, opt := range opts {
		opt(o)
	}

	raw := map[string]any{}
	if path != "" {
		loaded, err := NewLoader(o.fs).Load(path)
		if err != nil {
			return nil, err
		}
		raw = loaded
	}
	if o.env != nil {
		if o.environ != nil {
			o.env.environ = o.environ
		}
		raw = DeepMerge(raw, o.env.Load())
	}

	p, err := decodeProfile(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "profile %s", path)
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "profile %s", path)
	}
	return p, nil
}

func decodeProfile(raw map[string]any) (*Profile, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "encode profile")
	}
	p := DefaultProfile()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, errors.Wrap(err, "decode profile")
	}
	if p.Settings == nil {
		p.Settings = map[string]any{}
	}
	return p, nil
}

// LoadSettings reads path and returns its settings section as JSON. It is
// used to reload settings when the profile changes on disk.
func LoadSettings(path string) ([]byte, error) {
	raw, err := NewLoader(nil).Load(path)
	if err != nil {
		return nil, err
	}
	settings, _ := raw["settings"].(map[string]any)
	if settings == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(settings)
	return b, errors.Wrap(err, "encode settings")
}
