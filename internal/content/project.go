package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-devdiary/internal/fileutil"
)

// ProjectSuffix marks a directory as a diary project.
const ProjectSuffix = "_log"

// Well-known project file and directory names.
const (
	ProjectURLFile = "project-url.txt"
	StagesDir      = "stages"
	ScreenshotsDir = "screenshots"
)

// Sentinel errors for content discovery.
var (
	ErrInputNotFound = errors.New("input directory not found")
	ErrIndexParse    = errors.New("failed to parse stage index")
)

// Project is one <name>_log directory.
type Project struct {
	Name        string   // Directory name, e.g. "shop_log"
	DisplayName string   // Name without the _log suffix
	Dir         string   // Absolute or input-relative directory
	URL         string   // Contents of project-url.txt, trimmed; "" when absent
	Stages      []Stage  // Existing stages sorted by date
	Missing     []string // Index entries whose file does not exist
	Indexed     bool     // Stages came from a stage index rather than a directory scan
}

// DisplayName strips the project suffix from a directory name.
func DisplayName(dirName string) string {
	return strings.TrimSuffix(dirName, ProjectSuffix)
}

// ScreenshotDir returns the screenshot directory of a project for lang.
func (p Project) ScreenshotDir(lang string) string {
	return filepath.Join(p.Dir, ScreenshotsDir, lang)
}

// Discover lists the projects under inputDir, sorted by directory name, and
// loads their stages. Projects without stages are included; callers decide
// whether to render them.
func Discover(inputDir string) ([]Project, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputDir)
		}
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), ProjectSuffix) || e.Name() == ProjectSuffix {
			continue
		}
		p, err := LoadProject(filepath.Join(inputDir, e.Name()))
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// LoadProject reads a single project directory.
func LoadProject(dir string) (Project, error) {
	name := filepath.Base(dir)
	p := Project{
		Name:        name,
		DisplayName: DisplayName(name),
		Dir:         dir,
	}

	url, err := fileutil.ReadText(filepath.Join(dir, ProjectURLFile))
	if err != nil {
		return Project{}, fmt.Errorf("reading %s of %s: %w", ProjectURLFile, name, err)
	}
	p.URL = strings.TrimSpace(url)

	stages, indexed, err := LoadStages(dir)
	if err != nil {
		return Project{}, fmt.Errorf("project %s: %w", name, err)
	}
	p.Indexed = indexed

	for _, s := range stages {
		if s.Path != "" && fileutil.FileExists(s.Path) {
			p.Stages = append(p.Stages, s)
		} else {
			p.Missing = append(p.Missing, s.File)
		}
	}
	SortStages(p.Stages)

	return p, nil
}
