// Package configs provides embedded configuration templates for ymjkit.
//
// The template is embedded at build time with go:embed, so it ships inside
// the binary and 'ymjkit config init' works in every distribution without
// extra data files.
package configs

import _ "embed"

// UserConfigTemplate is the template for the user configuration file.
// Created by `ymjkit config init` at ~/.config/ymjkit/config.yaml
// (or $XDG_CONFIG_HOME/ymjkit/config.yaml when XDG_CONFIG_HOME is set).
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
