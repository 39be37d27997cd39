// SPDX-License-Identifier: MIT

// Package config holds the immutable settings of a coverage environment.
//
// Default reproduces the reference constants. Load reads a YAML file, or a
// JSON file with comments and trailing commas when the extension is .json or
// .jsonc, on top of Default; unknown keys are errors. Validate reports every
// problem at once, each wrapping ErrInvalid.
//
// Values that follow from others (motion radius, discovery radius, feature
// widths) are methods rather than fields so they cannot drift apart.
package config
