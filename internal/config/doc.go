// Package config assembles the settings of both binaries.
//
// Sources are merged field by field, the first non-zero value wins:
// environment variables, command-line flags, the JSON file named by CONFIG
// or -c, and finally the built-in defaults. [GetStructuredConfig] serves the
// ledger server; [GetClientConfig] narrows the same sources to the terminal
// client.
package config
