package component

import (
	"slices"

	"github.com/exploringlines/entitysystem/internal/core/ecs"
)

// Label is free-form descriptive data.
type Label struct {
	Text string   `yaml:"text"`
	Tags []string `yaml:"tags"`
}

func (l *Label) Copy() ecs.Component {
	return &Label{Text: l.Text, Tags: slices.Clone(l.Tags)}
}

func (l *Label) HasTag(tag string) bool {
	return slices.Contains(l.Tags, tag)
}
