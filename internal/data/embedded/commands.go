// Package embedded provides access to data files compiled into the iscript binary.
package embedded

import _ "embed"

// CommandsData contains the embedded default command schema (YAML).
//
//go:embed commands.yaml
var CommandsData []byte

// CommandsSource names the embedded schema in error messages.
const CommandsSource = "embedded://commands.yaml"
