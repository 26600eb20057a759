// Package catalog loads the static college dataset used when the catalog is
// not backed by a database.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/career-guide-api/internal/models"
)

// seedNamespace scopes deterministic ids derived from college names.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("career-guide/colleges"))

var compiledSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(seedSchema))
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded schema: %v", err))
	}
	compiledSchema = schema
}

type seedFile struct {
	Version  string           `json:"version"`
	Colleges []models.College `json:"colleges"`
}

// ValidationError lists every schema violation found in a seed document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid catalog seed: " + strings.Join(e.Problems, "; ")
}

// Load reads a YAML or JSON seed file chosen by extension.
func Load(path string) ([]models.College, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(raw, FormatYAML)
	case ".json":
		return Parse(raw, FormatJSON)
	default:
		return nil, fmt.Errorf("unsupported catalog seed extension %q", filepath.Ext(path))
	}
}

// Format identifies the seed encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Parse validates and decodes a seed document. Colleges without an id get a
// deterministic one derived from their name; duplicate names are rejected.
func Parse(raw []byte, format Format) ([]models.College, error) {
	var doc interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml seed: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode json seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}

	result, err := compiledSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate seed: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, &ValidationError{Problems: problems}
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalise seed: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(normalized, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(seed.Colleges))
	colleges := make([]models.College, 0, len(seed.Colleges))
	for _, college := range seed.Colleges {
		college.Name = strings.TrimSpace(college.Name)
		key := strings.ToLower(college.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate college %q in seed", college.Name)
		}
		seen[key] = struct{}{}

		if college.ID == "" {
			college.ID = SeedID(college.Name)
		}
		if college.Courses == nil {
			college.Courses = []string{}
		}
		if college.PucCutoff != nil {
			college.PucCutoff.Stream = college.PucCutoff.Stream.Normalize()
		}
		colleges = append(colleges, college)
	}
	return colleges, nil
}

// SeedID derives the stable id assigned to a seeded college.
func SeedID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(strings.ToLower(strings.TrimSpace(name)))).String()
}
