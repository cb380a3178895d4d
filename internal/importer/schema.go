package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the YAML layout of an offline catalog:
//
//	subjects: {MC102: IC}
//	credits:  {MC102: 6}
//	terms:
//	  1s2024:
//	    MC102:
//	      - slots:
//	          - {day: Segunda, hours: "08:00 - 10:00"}
//
// An empty section list records that the term does not offer the subject.
type CatalogSchema struct {
	Subjects map[string]string                    `yaml:"subjects,omitempty"`
	Credits  map[string]int                       `yaml:"credits"`
	Terms    map[string]map[string][]SectionImport `yaml:"terms"`
}

type SectionImport struct {
	Slots []SlotImport `yaml:"slots"`
}

type SlotImport struct {
	Day   string `yaml:"day"`
	Hours string `yaml:"hours"`
}

func LoadCatalog(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog rejects unknown keys so typos do not silently drop data.
func ParseCatalog(data []byte) (*CatalogSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema CatalogSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &schema, nil
}
