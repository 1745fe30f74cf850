// Package config loads and validates trsa settings.
//
// Settings are read from YAML and validated with go-playground/validator. Any section left
// out of the file keeps its default value.
package config
