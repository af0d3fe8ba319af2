// Package hash provides the CRC32-Castagnoli checksum that guards stored
// report blobs against corruption.
//
//	checksum := hash.CRC32C(data)
package hash
