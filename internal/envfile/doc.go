// Package envfile parses and rewrites .env files.
//
// Files are treated line by line. A line is one of:
//
//   - blank, skipped
//   - a plain comment, skipped
//   - an active assignment (KEY=VALUE)
//   - a disabled assignment (# KEY=VALUE)
//
// Anything else is malformed and skipped without error, so one bad line never
// hides the rest of the file. Values are kept verbatim: no quote stripping,
// unescaping or interpolation.
//
// Toggle flips a single assignment between active and disabled by adding or
// removing the leading '#', re-reading the file first and rewriting it whole.
package envfile
