// Package idlvet validates the structure of generated on-chain interface crates.
package idlvet

// Version is the current idlvet release version.
const Version = "0.3.0"
