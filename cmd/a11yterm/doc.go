// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for a11yterm.
//
// This package implements the Cobra command hierarchy: the root command
// (which launches the showcase), list, docs, config and serve. Every command
// receives an App that carries the configuration provider, the effective
// configuration, the logger and the output streams.
package cmd
