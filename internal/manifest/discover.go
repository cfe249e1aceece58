package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"depsiren/internal/model"
)

// Ignored directories (exact match on folder name)
var ignoredDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".venv":        {},
	"venv":         {},
}

// Supported manifest filenames mapped to their parser.
var parsers = map[string]func(string) ([]model.DependencySpec, error){
	"requirements.txt":     parseRequirements,
	"requirements-dev.txt": parseRequirements,
	"package.json":         parsePackageJSON,
	"package-lock.json":    parsePackageLock,
	"Pipfile.lock":         parsePipfileLock,
	"poetry.lock":          parsePoetryLock,
	"pnpm-lock.yaml":       parsePnpmLock,
}

// Discover walks root and returns every manifest file we know how to parse,
// skipping ignored directories and unreadable entries. Output is sorted for
// deterministic runs.
func Discover(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var manifests []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// An unreadable entry is skipped; the rest of the tree
			// still gets scanned.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if _, ok := ignoredDirs[info.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := parsers[info.Name()]; ok {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(manifests)
	return manifests, nil
}

// Parse reads one manifest into dependency specs. An unsupported filename or
// unparseable content yields an empty list; the error is informational and
// must never abort processing of other manifests.
func Parse(path string) ([]model.DependencySpec, error) {
	parse, ok := parsers[filepath.Base(path)]
	if !ok {
		return nil, nil
	}
	specs, err := parse(path)
	if err != nil {
		return nil, err
	}
	return specs, nil
}
