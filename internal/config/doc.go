// Package config loads the connection settings for the hosted table.
// Secrets come from a TOML file or the environment; both the endpoint
// URL and the access key must be present before a gateway is built.
package config
