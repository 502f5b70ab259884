// Package config loads application settings from defaults, an optional YAML
// file, a .env file and GEOTASK_-prefixed environment variables, and
// validates the result before anything else starts.
package config
