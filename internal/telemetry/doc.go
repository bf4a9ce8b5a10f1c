// Package telemetry holds the structured logger used by the CLI and daemon.
package telemetry
