// Package diagnostic collects structured errors, warnings and notes produced
// while loading declarations and generating optics.
//
// Typical findings:
//   - Malformed optic directives on fields and variants
//   - Declarations whose shape does not support a requested derivation
//   - Implementations that refer to an accessor nobody defines
//   - Positional fields beyond the supported index range
package diagnostic
