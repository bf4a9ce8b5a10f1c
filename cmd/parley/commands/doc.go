// Package commands implements the parley CLI subcommands.
package commands
