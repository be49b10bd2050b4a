package models

// Category represents a category assigned to a purchase.
type Category struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CategoryConfig maps a category name to the keywords that select it.
// Configuration order matters: later entries override earlier matches, so
// specific categories should be listed after broad catch-alls.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the top-level document of a categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
