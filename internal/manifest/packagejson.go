package manifest

import (
	"encoding/json"
	"os"
	"strings"

	"depsiren/internal/model"
)

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func parsePackageJSON(path string) ([]model.DependencySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data packageJSON
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, err
	}

	var specs []model.DependencySpec
	for _, deps := range []map[string]string{data.Dependencies, data.DevDependencies} {
		for name, version := range deps {
			specs = append(specs, model.DependencySpec{
				Name:       strings.ToLower(name),
				Version:    version,
				Ecosystem:  model.EcosystemNpm,
				SourcePath: path,
			})
		}
	}
	return specs, nil
}
