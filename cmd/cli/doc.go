// Package cli constructs the partscan command-line interface, wiring the
// Cobra root command, the layered configuration loader, and structured
// logging around the manifest generator. Invoking the root command without
// arguments generates the parts manifest.
package cli
