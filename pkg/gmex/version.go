// Package gmex exposes build-level metadata for the gmex tool.
package gmex

// Version is the current gmex release version.
const Version = "0.3.0"
