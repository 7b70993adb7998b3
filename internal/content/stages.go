package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-devdiary/internal/dateutil"
	"github.com/alnah/go-devdiary/internal/fileutil"
	"github.com/alnah/go-devdiary/internal/yamlutil"
)

// IndexFiles are the stage index names tried in order inside stages/.
// JSON is valid YAML, so all of them go through the same decoder.
var IndexFiles = []string{"stages-index.json", "stages-index.yaml", "stages-index.yml"}

// Stage is one entry of a project's stage list.
type Stage struct {
	File  string `yaml:"file" json:"file"`
	Date  string `yaml:"date" json:"date"`
	Title string `yaml:"title" json:"title,omitempty"`

	Path string `yaml:"-" json:"-"` // File resolved against the stages directory
}

type stageIndex struct {
	Stages []Stage `yaml:"stages"`
}

// LoadStages reads the stage list of a project. It reports whether a stage
// index was found; without one, stages/*.md are listed in name order.
func LoadStages(projectDir string) ([]Stage, bool, error) {
	stagesDir := filepath.Join(projectDir, StagesDir)

	for _, name := range IndexFiles {
		indexPath := filepath.Join(stagesDir, name)
		data, err := os.ReadFile(indexPath) // #nosec G304 -- path built from the input directory
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, false, fmt.Errorf("reading %s: %w", name, err)
		}
		stages, err := ParseIndex(data)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", name, err)
		}
		for i := range stages {
			// Entries escaping the stages directory keep an empty Path and
			// are reported as missing.
			if file := filepath.FromSlash(stages[i].File); filepath.IsLocal(file) {
				stages[i].Path = filepath.Join(stagesDir, file)
			}
		}
		return stages, true, nil
	}

	stages, err := scanStages(stagesDir)
	return stages, false, err
}

// ParseIndex decodes a stage index, either a bare list of stages or an
// object with a "stages" list. Entries without a file are skipped.
func ParseIndex(data []byte) ([]Stage, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var list []Stage
	listErr := yamlutil.Unmarshal(data, &list)
	if listErr != nil {
		var wrapped stageIndex
		if err := yamlutil.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndexParse, listErr)
		}
		list = wrapped.Stages
	}

	stages := make([]Stage, 0, len(list))
	for _, s := range list {
		s.File = strings.TrimSpace(s.File)
		if s.File == "" {
			continue
		}
		s.Date = strings.TrimSpace(s.Date)
		s.Title = strings.TrimSpace(s.Title)
		stages = append(stages, s)
	}
	return stages, nil
}

// scanStages lists stage files when no index exists. Introductions and
// suffixed translations such as 01.en.md are not stages.
func scanStages(stagesDir string) ([]Stage, error) {
	if !fileutil.DirExists(stagesDir) {
		return nil, nil
	}
	entries, err := os.ReadDir(stagesDir)
	if err != nil {
		return nil, fmt.Errorf("reading stages directory: %w", err)
	}

	var stages []Stage
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".md") || strings.EqualFold(name, "intro.md") {
			continue
		}
		if isTranslation(name) {
			continue
		}
		stages = append(stages, Stage{File: name, Path: filepath.Join(stagesDir, name)})
	}
	return stages, nil
}

// isTranslation reports whether name looks like base.<lang>.md.
func isTranslation(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	ext := filepath.Ext(base)
	return len(ext) == 3 && ext[1] >= 'a' && ext[1] <= 'z' && ext[2] >= 'a' && ext[2] <= 'z'
}

// SortStages orders stages by date, oldest first. The sort is stable and
// stages whose date cannot be parsed keep their relative order at the end.
func SortStages(stages []Stage) {
	type dated struct {
		stage Stage
		t     time.Time
		ok    bool
	}
	items := make([]dated, len(stages))
	for i, s := range stages {
		t, err := dateutil.ParseStageDate(s.Date)
		items[i] = dated{stage: s, t: t, ok: err == nil}
	}

	slices.SortStableFunc(items, func(a, b dated) int {
		switch {
		case a.ok && b.ok:
			return a.t.Compare(b.t)
		case a.ok:
			return -1
		case b.ok:
			return 1
		}
		return 0
	})

	for i, it := range items {
		stages[i] = it.stage
	}
}
