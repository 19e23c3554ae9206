// SPDX-License-Identifier: MPL-2.0

// Package sshserver serves a Bubble Tea program to remote terminals over SSH
// using the Wish library.
//
// Every session gets its own program from the configured handler, so sessions
// never share widget or focus state. Sessions without an interactive terminal
// are rejected. The server is single-use and follows the lifecycle
// Created → Starting → Running → Stopping → Stopped, or Failed.
package sshserver
