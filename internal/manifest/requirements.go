package manifest

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"depsiren/internal/model"
)

// Matches "name", "name==1.2.3", "name>=1.0 ; python_version < '3.9'" etc.
// Environment markers after ";" are ignored.
var reRequirement = regexp.MustCompile(
	`^\s*(?P<name>[A-Za-z0-9_.-]+)` +
		`(?:\s*(?:===|==|>=|<=|~=|!=)\s*(?P<version>[^\s;]+))?` +
		`(?:\s*;.*)?$`)

func parseRequirements(path string) ([]model.DependencySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var specs []model.DependencySpec
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := reRequirement.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		specs = append(specs, model.DependencySpec{
			Name:       strings.ToLower(m[1]),
			Version:    m[2],
			Ecosystem:  model.EcosystemPyPI,
			SourcePath: path,
		})
	}
	return specs, scanner.Err()
}
