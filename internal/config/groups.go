package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// GroupList is an AND-of-OR filter expression: each inner slice is a group
// of patterns combined with OR, and groups combine with AND.
//
// Both config formats are accepted:
//
//	job_titles: [engineer, developer]          # one OR group
//	job_titles: [[engineer, developer], [sr]]  # two AND-ed OR groups
type GroupList [][]string

func (g GroupList) Groups() [][]string { return [][]string(g) }

func (g *GroupList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("filter list must be a sequence, got %s", value.Tag)
	}
	if len(value.Content) == 0 {
		*g = nil
		return nil
	}
	// Shape is decided by the first entry, mirroring how the config
	// format has always been read.
	if value.Content[0].Kind == yaml.SequenceNode {
		var nested [][]string
		if err := value.Decode(&nested); err != nil {
			return err
		}
		*g = nested
		return nil
	}
	var flat []string
	if err := value.Decode(&flat); err != nil {
		return err
	}
	*g = GroupList{flat}
	return nil
}

func (g GroupList) MarshalYAML() (any, error) {
	// Always write the nested form; it round-trips unambiguously.
	return [][]string(g), nil
}

func (g *GroupList) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*g = nil
		return nil
	}
	if len(raw[0]) > 0 && raw[0][0] == '[' {
		var nested [][]string
		if err := json.Unmarshal(b, &nested); err != nil {
			return err
		}
		*g = nested
		return nil
	}
	var flat []string
	if err := json.Unmarshal(b, &flat); err != nil {
		return err
	}
	*g = GroupList{flat}
	return nil
}

func (g GroupList) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([][]string(g))
}
