// Package sanitizer normalizes booking input before validation and storage.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. Invalid input is never rejected here; the validator
// decides what is acceptable.
//
// Normalization includes:
//   - Names and states: trim and collapse inner whitespace, case preserved
//   - Mobile numbers: E.164 when the number is valid for the default region,
//     otherwise the trimmed input with inner whitespace removed
//   - Emails: trimmed and lowercased
package sanitizer
