// Package config loads and writes the traktsync configuration file. The
// loader overlays ~/.config/traktsync/config.yaml on built-in defaults and
// hands back a value; configuration is never mutated in place.
package config
