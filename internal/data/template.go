package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/exploringlines/entitysystem/internal/core/ecs"
)

// templateEntry is one item of the YAML list:
//
//	- name: mover
//	  components:
//	    position: {x: 0, y: 0}
//	    velocity: {dx: 1}
type templateEntry struct {
	Name       string    `yaml:"name"`
	Components yaml.Node `yaml:"components"`
}

// Template is a named set of prototype components. Spawning an entity from
// it attaches a Copy of every prototype, so entities never share state.
type Template struct {
	Name       string
	prototypes []ecs.Component
}

// Instantiate returns fresh copies of the prototypes in document order.
func (t *Template) Instantiate() []ecs.Component {
	out := make([]ecs.Component, len(t.prototypes))
	for i, p := range t.prototypes {
		out[i] = p.Copy()
	}
	return out
}

// Len returns the number of components in the template.
func (t *Template) Len() int { return len(t.prototypes) }

// TemplateTable provides lookup of entity templates by name.
type TemplateTable struct {
	templates map[string]*Template
	order     []string
}

// LoadTemplateTable loads a YAML template list, resolving component names
// through catalog.
func LoadTemplateTable(path string, catalog *Catalog) (*TemplateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template list: %w", err)
	}
	t, err := ParseTemplates(raw, catalog)
	if err != nil {
		return nil, fmt.Errorf("template list %s: %w", path, err)
	}
	return t, nil
}

// ParseTemplates decodes YAML template bytes.
func ParseTemplates(raw []byte, catalog *Catalog) (*TemplateTable, error) {
	var entries []templateEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse template list: %w", err)
	}
	t := &TemplateTable{
		templates: make(map[string]*Template, len(entries)),
		order:     make([]string, 0, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("template #%d: name is required", i)
		}
		if _, dup := t.templates[e.Name]; dup {
			return nil, fmt.Errorf("template %q defined twice", e.Name)
		}
		protos, err := decodeComponents(&e.Components, catalog)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", e.Name, err)
		}
		t.templates[e.Name] = &Template{Name: e.Name, prototypes: protos}
		t.order = append(t.order, e.Name)
	}
	return t, nil
}

func decodeComponents(node *yaml.Node, catalog *Catalog) ([]ecs.Component, error) {
	if node.Kind == 0 || node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: components must be a mapping", node.Line)
	}
	out := make([]ecs.Component, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if _, dup := seen[key.Value]; dup {
			return nil, fmt.Errorf("line %d: component %q defined twice", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}
		c, err := catalog.New(key.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}
		if value.ShortTag() != "!!null" {
			if err := value.Decode(c); err != nil {
				return nil, fmt.Errorf("component %q: %w", key.Value, err)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// Get returns the template with the given name.
func (t *TemplateTable) Get(name string) (*Template, bool) {
	tpl, ok := t.templates[name]
	return tpl, ok
}

// Names returns template names in document order.
func (t *TemplateTable) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Count returns the total number of templates loaded.
func (t *TemplateTable) Count() int {
	return len(t.templates)
}

// Spawn creates an entity in reg and attaches copies of the template's
// components. An empty entityName creates an unnamed entity.
func (t *TemplateTable) Spawn(reg *ecs.Registry, template, entityName string) (*ecs.Entity, error) {
	tpl, ok := t.templates[template]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}
	var e *ecs.Entity
	if entityName == "" {
		e = reg.CreateEntity()
	} else {
		e = reg.CreateNamedEntity(entityName)
	}
	for _, c := range tpl.Instantiate() {
		reg.SetComponent(e, c)
	}
	return e, nil
}
