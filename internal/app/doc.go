// Package app wires the archgraph pieces into a runnable application:
// validated configuration, an isolated logger, architecture loading,
// assembly, and presentation of the result.
package app
