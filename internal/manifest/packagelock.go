package manifest

import (
	"encoding/json"
	"os"
	"strings"

	"depsiren/internal/model"
)

// lockDep is the recursive v1 lockfile dependency shape.
type lockDep struct {
	Version      string             `json:"version"`
	Dependencies map[string]lockDep `json:"dependencies"`
}

func parsePackageLock(path string) ([]model.DependencySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data struct {
		Dependencies map[string]lockDep `json:"dependencies"`
	}
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, err
	}

	var specs []model.DependencySpec
	var walk func(deps map[string]lockDep)
	walk = func(deps map[string]lockDep) {
		for name, info := range deps {
			specs = append(specs, model.DependencySpec{
				Name:       strings.ToLower(name),
				Version:    info.Version,
				Ecosystem:  model.EcosystemNpm,
				SourcePath: path,
			})
			walk(info.Dependencies)
		}
	}
	walk(data.Dependencies)
	return specs, nil
}
