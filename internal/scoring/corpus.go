package scoring

import (
	_ "embed"
	"encoding/json"
	"sync"

	"depsiren/internal/model"
)

//go:embed data/top_packages.json
var topPackagesRaw []byte

var (
	topPackagesOnce sync.Once
	topPackages     map[string][]string
)

// TopPackages returns the curated list of well-known package names for the
// ecosystem, in corpus order. The order is observable: the typosquat
// evaluator reports the first qualifying reference name.
func TopPackages(eco model.Ecosystem) []string {
	topPackagesOnce.Do(func() {
		if err := json.Unmarshal(topPackagesRaw, &topPackages); err != nil {
			topPackages = map[string][]string{}
		}
	})
	return topPackages[string(eco)]
}
