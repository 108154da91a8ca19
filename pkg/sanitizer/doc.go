// Package sanitizer normalizes reference data before it is validated and
// stored.
//
// All functions are idempotent. Invalid input yields an empty string rather
// than an error; validation tags on the model decide whether empty is allowed.
//
// Normalization includes:
//   - Phone numbers: E.164 (+[country][number])
//   - Names and addresses: trimmed, inner whitespace collapsed
//   - States and zip codes: trimmed and upper-cased
//   - Time zones: trimmed, canonical IANA name
package sanitizer
