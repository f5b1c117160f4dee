package render

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/kolaw/pkg/statute"
)

// RecordJSON serializes the structured record as indented JSON. The
// record mirrors the tree exactly; no lossy transformation is applied, so
// the markdown rendering and this record always derive from the same
// data.
func RecordJSON(doc *statute.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding record as JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// RecordYAML serializes the structured record as YAML.
func RecordYAML(doc *statute.Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding record as YAML: %w", err)
	}
	return data, nil
}
