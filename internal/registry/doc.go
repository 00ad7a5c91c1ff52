// Package registry holds the in-memory view of the remote alpha table:
// the row model, the snapshot store the poller writes into, and the
// search/filter and statistics helpers the UI derives its views from.
package registry
