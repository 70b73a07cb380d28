// Package folders stores the user's custom folder shortcuts: ordered
// (label, path) pairs kept in a TOML file and swept by batch sorting after the
// configured library directories.
package folders
