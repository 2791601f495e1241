// Package canon produces canonical JSON and domain-separated content hashes.
//
// Canonical JSON follows RFC 8785 closely enough for identity purposes:
//   - Object keys sorted by UTF-16 code units
//   - No HTML escaping
//   - Strings NFC normalized
//   - Floats and null rejected
//
// Circuit fingerprints, run identities and golden snapshots all go through
// MarshalCanonical so that equal values always serialize to equal bytes.
package canon
