// Package config manages user settings stored at ~/.stackgen/config.yaml and
// the defaults applied when a setting is absent. Settings cover the scaffold
// defaults: version pins and fullstack directory names.
package config
