package manifest

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"depsiren/internal/model"
)

type pnpmLock struct {
	Dependencies    map[string]string `yaml:"dependencies"`
	DevDependencies map[string]string `yaml:"devDependencies"`
}

func parsePnpmLock(path string) ([]model.DependencySpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data pnpmLock
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, err
	}

	var specs []model.DependencySpec
	for _, deps := range []map[string]string{data.Dependencies, data.DevDependencies} {
		for name, version := range deps {
			specs = append(specs, model.DependencySpec{
				Name:       strings.ToLower(name),
				Version:    cleanPnpmVersion(version),
				Ecosystem:  model.EcosystemNpm,
				SourcePath: path,
			})
		}
	}
	return specs, nil
}

// cleanPnpmVersion strips the peer-dependency suffix pnpm appends, e.g.
// "7.20.0(react@18.2.0)" -> "7.20.0".
func cleanPnpmVersion(v string) string {
	if i := strings.IndexByte(v, '('); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
