// Package entity holds the mutable builder-side representations of
// architectural entities. Builders are populated from reader records
// during assembly, mutated while the intra-node search attaches
// callback chains and message contexts, and then finalized into the
// immutable snapshots of internal/model.
//
// Finalize is idempotent in content terms: calling it twice yields
// field-wise equal values. Mutating a builder after it was finalized
// is a programming error and panics.
package entity
