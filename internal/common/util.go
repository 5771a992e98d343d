// Package common holds small helpers shared across the client.
package common

// WipeByteArray zeroes b so secrets such as passwords do not linger in
// memory longer than needed. A nil slice is ignored.
func WipeByteArray(b []byte) {
	clear(b)
}
