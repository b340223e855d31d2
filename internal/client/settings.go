package client

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
)

func (c *Client) hookConfiguration(s *session) {
	s.listeners.Add(c.host.Workspace.OnDidChangeConfiguration(func() {
		if !c.current(s) {
			return
		}
		c.refreshTrace(s, true)
		c.sendConfiguration(s)
	}))
	c.sendConfiguration(s)
}

// sendConfiguration sends the configured sections while the client is
// running.
func (c *Client) sendConfiguration(s *session) {
	keys := c.opts.Synchronize.ConfigurationSection
	if len(keys) == 0 {
		return
	}
	if _, ok := c.running(); !ok || !c.current(s) {
		return
	}
	settings, err := ExtractSettings(c.host.Workspace.Configuration(), keys)
	if err != nil {
		c.error("Extracting settings failed.", err)
		return
	}
	notify(c, s, protocol.DidChangeConfigurationNotification, protocol.DidChangeConfigurationParams{Settings: settings})
}

// ExtractSettings builds the settings object sent with
// workspace/didChangeConfiguration. Each dotted key becomes a nested path,
// so "mssql.format.keywordCasing" yields
// {"mssql":{"format":{"keywordCasing":...}}}. Missing and null values are
// left out.
func ExtractSettings(cfg host.Configuration, keys []string) (json.RawMessage, error) {
	out := []byte("{}")
	if cfg == nil {
		return out, nil
	}
	for _, key := range keys {
		raw, ok := cfg.Get(key)
		if !ok || len(raw) == 0 || gjson.ParseBytes(raw).Type == gjson.Null {
			continue
		}
		var err error
		out, err = sjson.SetRawBytes(out, settingsPath(key), raw)
		if err != nil {
			return nil, errors.Wrapf(err, "setting %s", key)
		}
	}
	return out, nil
}

var pathEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`)

func settingsPath(key string) string {
	return pathEscaper.Replace(key)
}
