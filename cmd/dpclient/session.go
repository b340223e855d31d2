package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.lsp.dev/uri"
	"go.uber.org/multierr"

	"github.com/dshills/dataprotocol/internal/client"
	"github.com/dshills/dataprotocol/internal/config"
	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/host/memory"
)

// ErrNoProvider is returned when the server offers no data protocol
// providers under the profile's provider id.
var ErrNoProvider = errors.New("no data protocol provider")

// session is a running client and the in-memory host it talks to.
type session struct {
	profile *config.Profile
	host    *memory.Host
	client  *client.Client
	logger  *slog.Logger
}

// sessionOptions customize the host before the client starts.
type sessionOptions struct {
	onDiagnostics func(collection string, u uri.URI, diagnostics []host.Diagnostic)
}

// withSession starts a client for the profile, runs fn and stops the
// client again.
func withSession(cmd *cobra.Command, g *globalFlags, so sessionOptions, fn func(ctx context.Context, s *session) error) (err error) {
	ctx := cmd.Context()
	s, err := openSession(ctx, g, cmd.ErrOrStderr(), so)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.client.Stop(context.Background()))
	}()
	return fn(ctx, s)
}

func openSession(ctx context.Context, g *globalFlags, stderr io.Writer, so sessionOptions) (*session, error) {
	logger, err := newLogger(stderr, g.logLevel, g.logFormat)
	if err != nil {
		return nil, err
	}

	profile, err := config.LoadProfile(g.configPath)
	if err != nil {
		return nil, errors.WithHint(err, "pass a profile with --config or set DPCLIENT_SERVER_COMMAND")
	}
	server, err := profile.ServerOptions()
	if err != nil {
		return nil, err
	}
	settings, err := profileSettings(profile, g.trace)
	if err != nil {
		return nil, err
	}

	root, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "working directory")
	}
	win := memory.NewWindow(stderr, memory.WithWindowLogger(logger))
	h := &memory.Host{
		Workspace:    memory.NewWorkspace(root, memory.WithSettings(settings), memory.WithLogger(logger)),
		Window:       win,
		Languages:    memory.NewLanguages(so.onDiagnostics),
		DataProtocol: memory.NewDataProtocol(),
	}
	if g.configPath != "" {
		if err := h.Workspace.WatchSettingsFile(ctx, g.configPath, config.LoadSettings); err != nil {
			logger.Warn("settings will not be reloaded", slog.String("err", err.Error()))
		}
	}

	cc := profile.Client
	c := client.NewWithID(profile.ClientID(), profile.Name, server,
		client.Host{Workspace: h.Workspace, Window: h.Window, Languages: h.Languages, DataProtocol: h.DataProtocol},
		client.WithLogger(logger),
		client.WithDocumentSelector(cc.DocumentSelector...),
		client.WithConfigurationSection(cc.Synchronize...),
		client.WithFileEvents(cc.FileEvents...),
		client.WithProviderID(cc.ProviderID),
		client.WithRevealOutputChannelOn(client.ParseRevealOutputChannelOn(cc.RevealOutputChannelOn)),
		client.WithForceDebug(cc.ForceDebug || g.debug),
		client.WithErrorHandlerConfig(client.ErrorHandlerConfig{
			MaxConsecutiveErrors: cc.MaxConsecutiveErrors,
			MaxRestarts:          cc.MaxRestarts,
			RestartWindow:        cc.RestartWindow.Std(),
		}),
		client.WithDocumentSyncDelay(cc.DocumentSyncDelay.Std()),
		client.WithFileEventDelay(cc.FileEventDelay.Std()),
	)

	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	if err := c.OnReady(ctx); err != nil {
		return nil, multierr.Append(err, c.Stop(context.Background()))
	}
	logger.Debug("client ready", slog.String("capabilities", c.Capabilities().String()))

	return &session{profile: profile, host: h, client: c, logger: logger}, nil
}

// profileSettings returns the profile settings with the trace level the
// client reads from <id>.trace.server. The flag wins over the profile.
func profileSettings(p *config.Profile, trace string) ([]byte, error) {
	settings, err := p.SettingsJSON()
	if err != nil {
		return nil, err
	}
	key := p.ClientID() + ".trace.server"
	if trace == "" {
		if gjson.GetBytes(settings, key).Exists() {
			return settings, nil
		}
		trace = p.Client.Trace
	}
	if trace == "" {
		return settings, nil
	}
	out, err := sjson.SetBytes(settings, key, trace)
	return out, errors.Wrap(err, "set trace level")
}

// provider returns the data protocol provider registered for the profile.
func (s *session) provider() (*host.DataProtocolProvider, error) {
	id := s.profile.Client.ProviderID
	if id == "" {
		return nil, errors.WithHint(ErrNoProvider, "set client.providerId in the profile")
	}
	p, ok := s.host.DataProtocol.Provider(id)
	if !ok {
		return nil, errors.WithHint(errors.Wrapf(ErrNoProvider, "provider %s", id),
			"the server did not advertise connectionProvider")
	}
	return p, nil
}

func newOwnerURI() string {
	return "dpclient://" + uuid.NewString()
}

// parseOptions turns k=v pairs into connection options. Booleans and
// integers keep their type.
func parseOptions(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.Newf("option %q is not key=value", pair)
		}
		switch {
		case v == "true" || v == "false":
			out[k] = v == "true"
		default:
			if n, err := strconv.Atoi(v); err == nil {
				out[k] = n
			} else {
				out[k] = v
			}
		}
	}
	return out, nil
}
