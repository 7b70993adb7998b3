package content

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// StageContent holds the parsed sections of a stage file.
type StageContent struct {
	Title       string
	WhatWas     string
	Solution    string
	WhySolution string
	Pros        string
	Cons        string
	Gotchas     string
	WhatDone    []string
}

// Sections returns the markdown sections in display order.
func (c StageContent) Sections() []string {
	return []string{c.WhatWas, c.Solution, c.WhySolution, c.Pros, c.Cons, c.Gotchas}
}

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionWhatWas
	sectionSolution
	sectionWhySolution
	sectionPros
	sectionCons
	sectionGotchas
	sectionWhatDone
)

// sectionHeadings maps lower-cased heading prefixes to sections. Longer
// headings sharing a prefix with a shorter one come first.
var sectionHeadings = []struct {
	prefix string
	kind   sectionKind
}{
	{"что сделано", sectionWhatDone},
	{"what was done", sectionWhatDone},
	{"what's done", sectionWhatDone},
	{"почему такое решение", sectionWhySolution},
	{"почему", sectionWhySolution},
	{"why this solution", sectionWhySolution},
	{"why", sectionWhySolution},
	{"что было", sectionWhatWas},
	{"what was needed", sectionWhatWas},
	{"what was", sectionWhatWas},
	{"решение", sectionSolution},
	{"solution", sectionSolution},
	{"плюсы", sectionPros},
	{"pros", sectionPros},
	{"минусы", sectionCons},
	{"cons", sectionCons},
	{"подводные камни", sectionGotchas},
	{"gotchas", sectionGotchas},
	{"pitfalls", sectionGotchas},
}

var (
	titlePattern   = regexp.MustCompile(`^#\s+(.+)$`)
	sectionPattern = regexp.MustCompile(`^##\s+(.+)$`)
	itemPattern    = regexp.MustCompile(`^(?:[-*]|\d+[.)])\s+(.+)$`)
)

func classifyHeading(heading string) sectionKind {
	h := strings.ToLower(strings.TrimSpace(heading))
	h = strings.TrimRight(h, ":")
	for _, s := range sectionHeadings {
		if strings.HasPrefix(h, s.prefix) {
			return s.kind
		}
	}
	return sectionNone
}

// ExtractStage splits a stage file into its title and known sections.
// The first level-1 heading is the title. Level-2 headings open a section;
// unknown headings close the current one. "What was done" keeps only its
// list items.
func ExtractStage(markdown string) StageContent {
	var c StageContent
	bodies := make(map[sectionKind][]string)
	current := sectionNone

	markdown = strings.TrimPrefix(markdown, "\uFEFF")
	for _, raw := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)

		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			current = classifyHeading(m[1])
			continue
		}
		if m := titlePattern.FindStringSubmatch(line); m != nil {
			if c.Title == "" {
				c.Title = strings.TrimSpace(m[1])
			}
			current = sectionNone
			continue
		}
		if current == sectionNone {
			continue
		}
		if current == sectionWhatDone {
			if m := itemPattern.FindStringSubmatch(line); m != nil {
				c.WhatDone = append(c.WhatDone, strings.TrimSpace(m[1]))
			}
			continue
		}
		bodies[current] = append(bodies[current], raw)
	}

	join := func(k sectionKind) string {
		return strings.TrimSpace(strings.Join(bodies[k], "\n"))
	}
	c.WhatWas = join(sectionWhatWas)
	c.Solution = join(sectionSolution)
	c.WhySolution = join(sectionWhySolution)
	c.Pros = join(sectionPros)
	c.Cons = join(sectionCons)
	c.Gotchas = join(sectionGotchas)

	return c
}

// ReadStage reads and parses a stage file.
func ReadStage(path string) (StageContent, string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from project discovery
	if err != nil {
		return StageContent{}, "", fmt.Errorf("reading stage %s: %w", path, err)
	}
	text := string(data)
	return ExtractStage(text), text, nil
}

// Screenshot is an image reference found in markdown.
type Screenshot struct {
	FileName string
	Alt      string
}

var imageRefPattern = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)

// Screenshots returns the images of markdown stored under screenshots/<lang>/,
// in order of appearance.
func Screenshots(markdown, lang string) []Screenshot {
	marker := ScreenshotsDir + "/" + lang + "/"
	var shots []Screenshot
	for _, m := range imageRefPattern.FindAllStringSubmatch(markdown, -1) {
		if !strings.Contains(m[2], marker) {
			continue
		}
		parts := strings.Split(m[2], "/")
		shots = append(shots, Screenshot{FileName: parts[len(parts)-1], Alt: m[1]})
	}
	return shots
}

// LeftoverScreenshots returns the screenshots of the full stage file that do
// not appear in any rendered section.
func LeftoverScreenshots(full string, c StageContent, lang string) []Screenshot {
	inSections := make(map[string]bool)
	for _, s := range Screenshots(strings.Join(c.Sections(), "\n"), lang) {
		inSections[s.FileName] = true
	}
	var leftover []Screenshot
	for _, s := range Screenshots(full, lang) {
		if !inSections[s.FileName] {
			leftover = append(leftover, s)
		}
	}
	return leftover
}
