// Package conv provides checked integer conversions for row and token ids.
//
// Row ids, token ids and token positions are stored as uint32 in postings and
// bitmaps. Inputs larger than that are rejected instead of wrapping silently.
package conv
