// Package app wires the platewatch pieces together: configuration, the
// table gateway, the snapshot store, the background refresh loop, and
// the terminal UI.
package app
