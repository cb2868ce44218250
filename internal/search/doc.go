// Package search runs the two path searches of the reconstruction:
//
// CallbackPathSearcher enumerates callback chains inside one node over
// a read/write point graph and attaches them to the node's path table.
//
// NodePathSearcher enumerates end-to-end routes across the node set
// over a graph whose edges are resolved communications, and
// materializes each route as an alternating node-path/communication
// sequence.
package search
