// Package config loads whatif configuration.
//
// Values are layered, later layers winning: the embedded defaults, the user
// config file, WHATIF_* environment variables and finally explicit
// overrides such as command-line flags.
package config
