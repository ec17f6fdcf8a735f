package verse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CollectionConfig is one entry in _data/collections.yml.
type CollectionConfig struct {
	Enabled     bool   `yaml:"enabled"`
	NameEN      string `yaml:"name_en"`
	Subject     string `yaml:"subject"`
	SubjectType string `yaml:"subject_type"`
}

// projectDefaults is the defaults block of _data/verse-config.yml.
type projectDefaults struct {
	Defaults struct {
		Subject     string `yaml:"subject"`
		SubjectType string `yaml:"subject_type"`
	} `yaml:"defaults"`
}

// LoadCollections reads _data/collections.yml. A missing file is an empty
// map, not an error.
func LoadCollections(projectDir string) (map[string]CollectionConfig, error) {
	path := filepath.Join(projectDir, "_data", "collections.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]CollectionConfig{}, nil
		}
		return nil, fmt.Errorf("read collections config: %w", err)
	}
	collections := map[string]CollectionConfig{}
	if err := yaml.Unmarshal(data, &collections); err != nil {
		return nil, fmt.Errorf("parse collections config: %w", err)
	}
	return collections, nil
}

// loadProjectDefaults reads the defaults block of _data/verse-config.yml.
func loadProjectDefaults(projectDir string) (subject, subjectType string) {
	path := filepath.Join(projectDir, "_data", "verse-config.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ""
	}
	var cfg projectDefaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", ""
	}
	return cfg.Defaults.Subject, cfg.Defaults.SubjectType
}

// CollectionSubject resolves the subject for a collection: the collection's
// own entry in collections.yml wins, then the project-wide defaults in
// verse-config.yml. Empty strings mean no subject is configured.
func CollectionSubject(collection, projectDir string) (subject, subjectType string, err error) {
	collections, err := LoadCollections(projectDir)
	if err != nil {
		return "", "", err
	}
	if cfg, ok := collections[collection]; ok && cfg.Subject != "" {
		return cfg.Subject, cfg.SubjectType, nil
	}
	subject, subjectType = loadProjectDefaults(projectDir)
	return subject, subjectType, nil
}
