package manifest

import (
	"encoding/json"
	"os"
	"strings"

	"depsiren/internal/model"
)

type pipfileLock struct {
	Default map[string]pipfileDep `json:"default"`
	Develop map[string]pipfileDep `json:"develop"`
}

type pipfileDep struct {
	Version string `json:"version"` // declared as "==1.2.3"
}

func parsePipfileLock(path string) ([]model.DependencySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data pipfileLock
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, err
	}

	var specs []model.DependencySpec
	for _, section := range []map[string]pipfileDep{data.Default, data.Develop} {
		for name, info := range section {
			specs = append(specs, model.DependencySpec{
				Name:       strings.ToLower(name),
				Version:    strings.TrimPrefix(info.Version, "=="),
				Ecosystem:  model.EcosystemPyPI,
				SourcePath: path,
			})
		}
	}
	return specs, nil
}
