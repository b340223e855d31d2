// Package config loads dpclient profiles.
//
// A profile describes how to launch a server, how the client behaves and
// the settings exposed to the server through workspace/configuration. It
// is read from TOML, YAML or JSON (chosen by extension), may pull in other
// files with an "@include" key and is overlaid with DPCLIENT_* environment
// variables:
//
//	@include = ["base.toml"]
//
//	[server]
//	command = "sqltoolsservice"
//	args = ["--log-dir", "/tmp"]
//
//	[client]
//	providerId = "MSSQL"
//	documentSelector = ["sql"]
//	synchronize = ["mssql"]
//
//	[settings.mssql]
//	trace.server = "messages"
package config
