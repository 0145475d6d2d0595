// Package file provides file-based configuration storage for polaris.
// Configuration lives in a TOML file under the user's config directory
// (~/.polaris by default) with keys flattened to dot notation.
package file
