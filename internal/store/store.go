// Package store provides loading and saving of category keyword
// configuration.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spendscope/spendscope/internal/logging"
	"github.com/spendscope/spendscope/internal/models"
)

// CategoryStore manages the YAML file holding the ordered category keyword
// mapping used by the keyword categorizer.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for category configuration. An empty
// filename falls back to "categories.yaml" in the standard locations.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(nil)
	}
	return &CategoryStore{CategoriesFile: categoriesFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations:
// the path as given, ./config/, ./database/, and ~/.config/spendscope/.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "spendscope", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads the ordered category configuration from YAML. A
// missing file is not an error: the categorizer simply has no rules and
// leaves everything uncategorized.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", filename).Warn("Categories file not found")
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// Preferred structure: a document with a top-level "categories" key.
	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		s.logger.WithFields(
			logging.Field{Key: "count", Value: len(categoriesConfig.Categories)},
			logging.Field{Key: "file", Value: filePath},
		).Debug("Loaded categories")
		return categoriesConfig.Categories, nil
	}

	// Fallback: a bare list of category entries.
	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(categories)},
		logging.Field{Key: "file", Value: filePath},
	).Debug("Loaded categories from bare list")
	return categories, nil
}

// SaveCategories writes the category configuration back to YAML, defaulting
// to database/categories.yaml when no file has been resolved before.
func (s *CategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("error resolving categories file: %w", err)
		}
		if filepath.IsAbs(filename) {
			filePath = filename
		} else {
			filePath = filepath.Join("database", filename)
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "count", Value: len(categories)},
		logging.Field{Key: "file", Value: filePath},
	).Debug("Saved categories")
	return nil
}
