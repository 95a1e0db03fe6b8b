// Package schema loads the declarative command schema that drives alias
// resolution and argument splitting. The schema is read once and never
// mutated afterwards.
package schema

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"iscript/internal/data/embedded"
	"iscript/internal/version"
	"iscript/pkg/scripttypes"
)

// Arg describes one positional argument of a command. In the schema file an
// argument is either a bare string (its name) or a mapping.
type Arg struct {
	Name     string `yaml:"name"`
	Optional bool   `yaml:"optional"`
}

// UnmarshalYAML accepts both `- url` and `- {name: url, optional: true}`.
func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Name = node.Value
		return nil
	}
	type plain Arg
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = Arg(p)
	return nil
}

// CommandDescriptor is one entry of the schema.
type CommandDescriptor struct {
	Name        string   `yaml:"name"`
	Aliases     []string `yaml:"aliases"`
	Description string   `yaml:"description"`
	Args        []Arg    `yaml:"args"`
}

// Arity returns the declared argument count.
func (d CommandDescriptor) Arity() int {
	return len(d.Args)
}

// Required returns how many leading arguments must be present.
func (d CommandDescriptor) Required() int {
	n := 0
	for _, a := range d.Args {
		if !a.Optional {
			n++
		}
	}
	return n
}

// Usage renders "name arg [optional]".
func (d CommandDescriptor) Usage() string {
	usage := d.Name
	for _, a := range d.Args {
		if a.Optional {
			usage += fmt.Sprintf(" [%s]", a.Name)
		} else {
			usage += " " + a.Name
		}
	}
	return usage
}

type schemaFile struct {
	Version  string              `yaml:"version"`
	Commands []CommandDescriptor `yaml:"commands"`
}

// Schema is the loaded, read-only command table.
type Schema struct {
	version  string
	commands []CommandDescriptor
	byName   map[string]int
	aliases  map[string]string
}

// Default loads the schema compiled into the binary.
func Default() (*Schema, error) {
	return Load(embedded.CommandsData, embedded.CommandsSource)
}

// LoadFile loads a schema from disk. YAML and JSON files are both accepted.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scripttypes.ConfigurationError{Source: path, Err: err}
	}
	return Load(data, path)
}

// Load parses schema data. The document is either a mapping with `version`
// and `commands`, or a bare list of command descriptors.
func Load(data []byte, source string) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &scripttypes.ConfigurationError{Source: source, Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, &scripttypes.ConfigurationError{Source: source, Err: fmt.Errorf("schema is empty")}
	}

	var file schemaFile
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&file.Commands); err != nil {
			return nil, &scripttypes.ConfigurationError{Source: source, Err: err}
		}
	case yaml.MappingNode:
		if err := root.Decode(&file); err != nil {
			return nil, &scripttypes.ConfigurationError{Source: source, Err: err}
		}
	default:
		return nil, &scripttypes.ConfigurationError{Source: source, Err: fmt.Errorf("schema must be a list or a mapping")}
	}

	if err := version.CheckSchemaVersion(file.Version); err != nil {
		return nil, &scripttypes.ConfigurationError{Source: source, Err: err}
	}

	s, err := build(file)
	if err != nil {
		return nil, &scripttypes.ConfigurationError{Source: source, Err: err}
	}
	return s, nil
}

func build(file schemaFile) (*Schema, error) {
	if len(file.Commands) == 0 {
		return nil, fmt.Errorf("schema declares no commands")
	}

	s := &Schema{
		version:  file.Version,
		commands: file.Commands,
		byName:   make(map[string]int, len(file.Commands)),
		aliases:  make(map[string]string),
	}

	for i, cmd := range file.Commands {
		if cmd.Name == "" {
			return nil, fmt.Errorf("command #%d has no name", i+1)
		}
		if _, exists := s.byName[cmd.Name]; exists {
			return nil, fmt.Errorf("command %s declared twice", cmd.Name)
		}
		s.byName[cmd.Name] = i
	}

	for _, cmd := range file.Commands {
		for _, alias := range cmd.Aliases {
			if _, exists := s.byName[alias]; exists {
				return nil, fmt.Errorf("alias %s of %s collides with a command name", alias, cmd.Name)
			}
			if owner, exists := s.aliases[alias]; exists {
				return nil, fmt.Errorf("alias %s declared by both %s and %s", alias, owner, cmd.Name)
			}
			s.aliases[alias] = cmd.Name
		}
	}

	return s, nil
}

// Version returns the schema version declared in the file.
func (s *Schema) Version() string {
	return s.version
}

// ResolveAlias returns the canonical command name for name, or name
// unchanged when it is neither a command nor an alias.
func (s *Schema) ResolveAlias(name string) string {
	if _, ok := s.byName[name]; ok {
		return name
	}
	if canonical, ok := s.aliases[name]; ok {
		return canonical
	}
	return name
}

// Lookup finds a command by canonical name.
func (s *Schema) Lookup(name string) (CommandDescriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return CommandDescriptor{}, false
	}
	return s.commands[i], true
}

// Has reports whether name is a canonical command name.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Commands returns a copy of the descriptors in declaration order.
func (s *Schema) Commands() []CommandDescriptor {
	out := make([]CommandDescriptor, len(s.commands))
	copy(out, s.commands)
	return out
}

// Len returns the number of commands.
func (s *Schema) Len() int {
	return len(s.commands)
}

// Words returns every command name and alias, sorted. Used for completion.
func (s *Schema) Words() []string {
	words := make([]string, 0, len(s.byName)+len(s.aliases))
	for name := range s.byName {
		words = append(words, name)
	}
	for alias := range s.aliases {
		words = append(words, alias)
	}
	sort.Strings(words)
	return words
}
