package manifest

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"depsiren/internal/model"
)

type poetryLock struct {
	Package []struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

func parsePoetryLock(path string) ([]model.DependencySpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data poetryLock
	if err := toml.Unmarshal(b, &data); err != nil {
		return nil, err
	}

	specs := make([]model.DependencySpec, 0, len(data.Package))
	for _, pkg := range data.Package {
		if pkg.Name == "" {
			continue
		}
		specs = append(specs, model.DependencySpec{
			Name:       strings.ToLower(pkg.Name),
			Version:    pkg.Version,
			Ecosystem:  model.EcosystemPyPI,
			SourcePath: path,
		})
	}
	return specs, nil
}
