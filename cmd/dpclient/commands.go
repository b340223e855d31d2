package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"go.lsp.dev/uri"

	"github.com/dshills/dataprotocol/internal/host"
)

func newCapabilitiesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Start the server and print what it supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, g, sessionOptions{}, func(ctx context.Context, s *session) error {
				out := cmd.OutOrStdout()
				caps := s.client.Capabilities()
				fmt.Fprintf(out, "features: %s\n", caps)
				fmt.Fprintf(out, "document sync: %s\n", caps.SyncKind())

				p, err := s.provider()
				if errors.Is(err, ErrNoProvider) {
					return nil
				}
				if err != nil {
					return err
				}
				dp, err := p.Capabilities.GetServerCapabilities(ctx, host.DataProtocolClientCapabilities{
					HostName:    s.profile.Client.HostName,
					HostVersion: s.profile.Client.HostVersion,
				})
				if err != nil {
					return err
				}
				if dp == nil {
					fmt.Fprintln(out, "data protocol: not reported")
					return nil
				}
				b, err := json.Marshal(dp)
				if err != nil {
					return errors.Wrap(err, "encode capabilities")
				}
				fmt.Fprintf(out, "data protocol:\n%s", pretty.Pretty(b))
				return nil
			})
		},
	}
}

// connectFlags are shared by connect and query.
type connectFlags struct {
	ownerURI string
	options  []string
	timeout  time.Duration
}

func (f *connectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ownerURI, "owner-uri", "", "Owner URI of the connection (default dpclient://<uuid>)")
	cmd.Flags().StringArrayVarP(&f.options, "option", "o", nil, "Connection option as key=value (repeatable)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "How long to wait for the connection to complete")
}

// connect opens a connection and waits for connection/complete.
func connect(ctx context.Context, s *session, f *connectFlags) (host.ConnectionInfoSummary, error) {
	p, err := s.provider()
	if err != nil {
		return host.ConnectionInfoSummary{}, err
	}
	opts, err := parseOptions(f.options)
	if err != nil {
		return host.ConnectionInfoSummary{}, err
	}
	if f.ownerURI == "" {
		f.ownerURI = newOwnerURI()
	}

	complete := make(chan host.ConnectionInfoSummary, 1)
	p.Connection.RegisterOnConnectionComplete(func(summary host.ConnectionInfoSummary) {
		if summary.OwnerURI != f.ownerURI {
			return
		}
		select {
		case complete <- summary:
		default:
		}
	})

	ok, err := p.Connection.Connect(ctx, f.ownerURI, host.ConnectionInfo{Options: opts})
	if err != nil {
		return host.ConnectionInfoSummary{}, err
	}
	if !ok {
		return host.ConnectionInfoSummary{}, errors.Newf("server rejected connection %s", f.ownerURI)
	}

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()
	select {
	case summary := <-complete:
		if summary.ErrorMessage != "" {
			return summary, errors.Newf("connection failed: %s", summary.ErrorMessage)
		}
		return summary, nil
	case <-timer.C:
		_, _ = p.Connection.CancelConnect(context.Background(), f.ownerURI)
		return host.ConnectionInfoSummary{}, errors.Newf("connection %s did not complete within %s", f.ownerURI, f.timeout)
	case <-ctx.Done():
		_, _ = p.Connection.CancelConnect(context.Background(), f.ownerURI)
		return host.ConnectionInfoSummary{}, ctx.Err()
	}
}

func printSummary(w io.Writer, summary host.ConnectionInfoSummary) {
	fmt.Fprintf(w, "connected: %s\n", summary.OwnerURI)
	if summary.ConnectionID != "" {
		fmt.Fprintf(w, "  connection id: %s\n", summary.ConnectionID)
	}
	if cs := summary.ConnectionSummary; cs != nil {
		fmt.Fprintf(w, "  server: %s\n  database: %s\n  user: %s\n", cs.ServerName, cs.DatabaseName, cs.UserName)
	}
	if summary.Messages != "" {
		fmt.Fprintf(w, "  messages: %s\n", summary.Messages)
	}
}

func newConnectCmd(g *globalFlags) *cobra.Command {
	f := &connectFlags{}
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Open a connection and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, g, sessionOptions{}, func(ctx context.Context, s *session) error {
				summary, err := connect(ctx, s, f)
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newQueryCmd(g *globalFlags) *cobra.Command {
	f := &connectFlags{}
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Connect, run a query and print the rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, g, sessionOptions{}, func(ctx context.Context, s *session) error {
				if _, err := connect(ctx, s, f); err != nil {
					return err
				}
				p, err := s.provider()
				if err != nil {
					return err
				}
				defer func() {
					if ok, err := p.Connection.Disconnect(context.Background(), f.ownerURI); err != nil || !ok {
						s.logger.Warn("disconnect failed", slog.String("owner", f.ownerURI))
					}
				}()

				res, err := p.Query.RunQueryAndReturn(ctx, f.ownerURI, args[0])
				if err != nil {
					return err
				}
				printRows(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func printRows(w io.Writer, res *host.SimpleExecuteResult) {
	if res == nil {
		fmt.Fprintln(w, "(no result)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := make([]string, len(res.ColumnInfo))
	for i, col := range res.ColumnInfo {
		names[i] = col.ColumnName
	}
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if cell.IsNull {
				cells[i] = "NULL"
			} else {
				cells[i] = cell.DisplayValue
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "(%d rows)\n", res.RowCount)
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [files...]",
		Short: "Open files, mirror their edits and print diagnostics until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			so := sessionOptions{
				onDiagnostics: func(_ string, u uri.URI, diagnostics []host.Diagnostic) {
					printDiagnostics(out, u, diagnostics)
				},
			}
			return withSession(cmd, g, so, func(ctx context.Context, s *session) error {
				for _, path := range args {
					if err := watchFile(s, path); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watching %d file(s), press Ctrl-C to stop\n", len(args))
				<-ctx.Done()
				return nil
			})
		},
	}
}

// watchFile opens path as a document and replaces its text whenever the
// file changes on disk.
func watchFile(s *session, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}
	rel, err := filepath.Rel(s.host.Workspace.RootPath(), abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return errors.Newf("%s is outside the working directory", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	u := uri.File(abs)
	if _, err := s.host.Workspace.OpenDocument(u, languageOf(abs, s.profile.Client.DocumentSelector), string(data)); err != nil {
		return err
	}

	w, err := s.host.Workspace.CreateFileSystemWatcher(filepath.ToSlash(rel))
	if err != nil {
		return err
	}
	w.OnDidChange(func(host.FileEvent) {
		data, err := os.ReadFile(abs)
		if err != nil {
			s.logger.Warn("reload failed", slog.String("path", abs), slog.String("err", err.Error()))
			return
		}
		if err := s.host.Workspace.ReplaceText(u, string(data)); err != nil {
			s.logger.Warn("update failed", slog.String("path", abs), slog.String("err", err.Error()))
		}
	})
	return nil
}

// languageOf picks the language id of a file: sql files are "sql",
// anything else takes the first selected language.
func languageOf(path string, selector []string) string {
	if strings.EqualFold(filepath.Ext(path), ".sql") {
		return "sql"
	}
	if len(selector) > 0 {
		return selector[0]
	}
	return "plaintext"
}

func printDiagnostics(w io.Writer, u uri.URI, diagnostics []host.Diagnostic) {
	name := u.Filename()
	if len(diagnostics) == 0 {
		fmt.Fprintf(w, "%s: clean\n", name)
		return
	}
	for _, d := range diagnostics {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", name, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message)
	}
}
