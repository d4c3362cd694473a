// Package sanitizer provides input normalization for reservation data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// the trimmed input or empty slices rather than errors.
//
// Normalization includes:
//   - Guest names: Collapse whitespace, trim leading/trailing spaces
//   - Emails: Trim and lowercase
//   - Phone numbers: Convert to E.164 format (+[country][number]) when parseable
//   - Amenities: Lowercase snake_case with known aliases folded - "Wi-Fi" becomes "wifi"
//   - Slices: Remove duplicates and empty values after normalization
package sanitizer
