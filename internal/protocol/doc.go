// Package protocol defines the wire shapes of the data protocol.
//
// The data protocol is the language server protocol (Content-Length framed
// JSON-RPC 2.0) extended with database-tooling methods: connection
// management, query execution, edit data, metadata, scripting, object
// explorer, administration, backup and restore, background tasks, a remote
// file browser, and profiling.
//
// # Catalog
//
// Every method is declared as a typed RequestType or NotificationType so
// callers cannot mix up parameter and result shapes:
//
//	res, err := protocol.ConnectionRequest.Send(ctx, conn, protocol.ConnectParams{
//	    OwnerURI:   "dpclient://query-1",
//	    Connection: protocol.ConnectionDetails{Options: opts},
//	})
//
// The types in this package are plain data. Conversion to and from the host
// model lives in package convert.
package protocol
