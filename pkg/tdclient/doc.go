// Package tdclient provides the main entry point for creating Bitbar
// (Testdroid) cloud API clients. It normalizes the configured endpoint,
// validates credentials, and wires the transport and OAuth2 token manager
// before handing back a testdroid.Client.
package tdclient
