// Package layout holds the header/footer bars and the overflow resolver
// that decides which of a bar's controls fit and which move into the More
// panel.
//
// Resolve is a pure function of (available size, natural sizes, priority
// order, trigger size). It keeps no history, so running it twice on the
// same inputs yields the same partition, and a stable size always converges
// in a single call.
package layout
