// Package memory is an in-memory implementation of the host collaborators.
//
// Documents live in a Workspace and are edited through its methods, which
// fire the same events an editor would. Settings are a JSON document
// resolved with gjson. File watchers are backed by fsnotify.
package memory
