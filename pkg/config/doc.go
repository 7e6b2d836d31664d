/*
Package config loads the optional ~/.config/nsq/config.yaml file,
following the small per-command Config-struct-plus-yaml.Unmarshal
pattern used throughout the teacher codebase (see cmd/warren's apply
command). CLI flags always take precedence — Load only establishes the
base a command's flag parsing then overrides field by field.
*/
package config
