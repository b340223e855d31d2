// Package launch starts a data protocol server and hands back a byte
// stream to talk to it.
//
// Four server shapes are supported, each a ServerOptions implementation:
//
//   - Executable spawns a command directly.
//   - Module runs a server entry point under a runtime, or through an
//     injected Forker when no runtime is named. The transport flag
//     (--stdio or --node-ipc) is appended to the arguments.
//   - RunDebug picks one of two shapes depending on debug mode.
//   - StreamFactory returns streams or a started process of its own.
//
// Stderr of a spawned server is copied to the launcher's output sink. With
// the IPC transport, protocol traffic uses a Unix socket pair passed to the
// child as fd 3, so stdout is copied to the sink as well.
package launch
