package devdiary

import (
	"fmt"

	"github.com/alnah/go-devdiary/internal/pipeline"
)

// labels holds the interface strings of one language.
type labels struct {
	subtitle       string
	generated      string
	projects       string
	stagesWord     string
	linkBlock      string
	linkFooter     string
	otherProjects  string
	about          string
	readMore       string
	collapse       string
	contents       string
	stageFallback  string // fmt verb receives the 1-based stage number
	previousStage  string
	whatDone       string
	sectionHeaders [6]string // WhatWas, Solution, WhySolution, Pros, Cons, Gotchas
	meta           pipeline.MetaLabels
}

// templateLanguage is the language the page template is written in.
const templateLanguage = "ru"

var languageLabels = map[string]labels{
	"ru": {
		subtitle:      "Дневник разработки",
		generated:     "Сгенерировано:",
		projects:      "Проекты",
		stagesWord:    "этапов",
		linkBlock:     "Текущая реализация на:",
		linkFooter:    "Рабочая версия проекта доступна по адресу:",
		otherProjects: "← Другие проекты",
		about:         "О проекте",
		readMore:      "Читать далее",
		collapse:      "Свернуть",
		contents:      "Оглавление",
		stageFallback: "Этап %d",
		previousStage: "← Предыдущий этап:",
		whatDone:      "Что сделано",
		sectionHeaders: [6]string{
			"Что было", "Решение", "Почему такое решение", "Плюсы", "Минусы", "Подводные камни",
		},
		meta: pipeline.MetaLabels{TitleSuffix: "Дневник разработки", Keywords: "разработка, дневник разработки"},
	},
	"en": {
		subtitle:      "Development Diary",
		generated:     "Generated:",
		projects:      "Projects",
		stagesWord:    "stages",
		linkBlock:     "Current implementation at:",
		linkFooter:    "Working version available at:",
		otherProjects: "← Other projects",
		about:         "About the project",
		readMore:      "Read more",
		collapse:      "Collapse",
		contents:      "Table of Contents",
		stageFallback: "Stage %d",
		previousStage: "← Previous stage:",
		whatDone:      "What was done",
		sectionHeaders: [6]string{
			"What was needed", "Solution", "Why this solution", "Pros", "Cons", "Gotchas",
		},
		meta: pipeline.MetaLabels{TitleSuffix: "Development Diary", Keywords: "development, development diary"},
	},
}

// labelsFor returns the labels of lang, falling back to English.
func labelsFor(lang string) labels {
	if l, ok := languageLabels[lang]; ok {
		return l
	}
	return languageLabels["en"]
}

func (l labels) stageTitle(n int) string {
	return fmt.Sprintf(l.stageFallback, n)
}
