package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKey = errors.New("unknown config key")

var schema = map[string][]string{
	"minimap":  {"width", "height", "border_color", "panning", "corner", "margin"},
	"viewport": {"min_scale", "max_scale", "zoom_step"},
	"terrain":  {"seed", "columns", "rows", "cell_size"},
	"terminal": {"width", "height"},
}

func sectionNames() []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkKeys(doc *yaml.Node) error {
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping at the top level", doc.Line)
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		fields, ok := schema[key.Value]
		if !ok {
			return unknownKey(key, key.Value, sectionNames())
		}
		if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
			continue
		}
		if value.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: %s must be a mapping", value.Line, key.Value)
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			field := value.Content[j]
			if !contains(fields, field.Value) {
				return unknownKey(field, key.Value+"."+field.Value, fields)
			}
		}
	}
	return nil
}

func unknownKey(node *yaml.Node, path string, candidates []string) error {
	name := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		name = path[i+1:]
	}
	if s := suggest(name, candidates); s != "" {
		return fmt.Errorf("%w %q at line %d (did you mean %q?)", ErrUnknownKey, path, node.Line, s)
	}
	return fmt.Errorf("%w %q at line %d", ErrUnknownKey, path, node.Line)
}

// suggest returns the closest candidate within an edit distance that scales
// with the input length, or "" when nothing is close.
func suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	limit := max(2, len(input)/3)
	best := ""
	bestDist := limit + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(input, c)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
