package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Author is a record in the external author registry. The registry is
// resolved once at process start and injected into the handlers that
// need it; the content pipeline itself only carries author ids.
type Author struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Role   string `yaml:"role" json:"role"`
	Avatar string `yaml:"avatar,omitempty" json:"avatar,omitempty"`
	Bio    string `yaml:"bio,omitempty" json:"bio,omitempty"`
}

type authorsFile struct {
	Authors []Author `yaml:"authors"`
}

// LoadAuthors reads the author registry from a YAML file. A missing
// file is not an error; posts then render without an author card.
func LoadAuthors(path string) (map[string]Author, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Author{}, nil
		}
		return nil, err
	}

	var f authorsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("authors: %w", err)
	}

	out := make(map[string]Author, len(f.Authors))
	for _, a := range f.Authors {
		if a.ID == "" {
			continue
		}
		out[a.ID] = a
	}
	return out, nil
}
