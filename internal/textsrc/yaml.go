package textsrc

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExtractYAML accepts either a list of strings or a mapping with a texts list.
func ExtractYAML(content []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.MappingNode {
		var doc struct {
			Texts *yaml.Node `yaml:"texts"`
		}
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc.Texts == nil {
			return nil, errors.New("YAML mapping must have a texts list")
		}
		node = doc.Texts
	}

	var texts []string
	if err := node.Decode(&texts); err != nil {
		return nil, fmt.Errorf("YAML texts must be a list of strings: %w", err)
	}
	return texts, nil
}
