// Package config loads the CasaFind API settings from defaults, an optional
// YAML file and CASAFIND_* environment variables, then validates them with
// struct tags. Startup fails on invalid configuration; in particular there is
// no fallback signing secret.
package config
