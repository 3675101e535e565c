// Package version contains information on the current version of the program.
// It is split from the main program for easy use.
package version

// Current is the string representing the current version of nfa2dfa.
const Current = "1.0.0"

// ServerCurrent is the string representing the current version of the nfa2dfa
// HTTP API server.
const ServerCurrent = "1.0.0"

// APIVersion is the version segment of the HTTP API paths.
const APIVersion = "v1"
