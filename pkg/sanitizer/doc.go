// Package sanitizer normalizes customer and admin input before validation and storage.
//
// All normalization functions are idempotent: applying them twice yields the
// same result as applying them once. Invalid input is reported by returning
// an empty string or zero, never an error, so validators downstream own the
// user-facing message.
//
// Normalization includes:
//   - Display names (customers, sports): trim and collapse inner whitespace
//   - Name keys: display name lowercased, used for case-insensitive uniqueness
//   - Phone numbers: E.164 (+[country][number]) resolved against a default region
//   - Counts: leading integer of free text such as "4 Players", 0 when absent
package sanitizer
