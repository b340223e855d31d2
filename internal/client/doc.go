// Package client runs a data protocol server on behalf of a host.
//
// A Client launches the server, performs the initialize handshake and then
// keeps the server in step with the host: open documents, settings and
// watched files are forwarded, diagnostics are published into a diagnostic
// collection, and every feature the server advertises is registered with
// the host as a language feature or data protocol provider.
//
//	c := client.New("MSSQL", launch.Executable{Command: "sqltoolsservice"},
//		client.Host{Workspace: ws, Window: win, Languages: langs, DataProtocol: dp},
//		client.WithDocumentSelector("sql"),
//		client.WithProviderID("MSSQL"),
//		client.WithConfigurationSection("mssql"),
//	)
//	if err := c.Start(ctx); err != nil {
//		return err
//	}
//	if err := c.OnReady(ctx); err != nil {
//		return err
//	}
//	defer c.Stop(context.Background())
//
// When the connection closes unexpectedly the ErrorHandler decides whether
// the server is restarted. The default handler restarts it unless it
// crashed five times within three minutes.
package client
