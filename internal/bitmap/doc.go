// Package bitmap provides compressed token and row sets backed by Roaring bitmaps.
//
// The verifier uses Set to compute exact Jaccard similarity between two
// row-sets (|A∩B| / |A∪B|) without materializing the intersection, and the
// cross-dataset orchestrator uses it to track which sorted rows belong to
// which source dataset.
//
// # Thread Safety
//
// A Set is not safe for concurrent mutation. Read-only use from several
// goroutines is fine.
package bitmap
