package assets

import (
	"fmt"
	"strings"
)

// DefaultTemplateName is the name of the built-in page template.
const DefaultTemplateName = "diary"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// RequiredPlaceholders must appear in every page template: main pages fill
// the table of contents, project pages fill the stages.
var RequiredPlaceholders = []string{"{{TABLE_OF_CONTENTS}}", "{{STAGES_CONTENT}}"}

// ValidateTemplate checks that a page template carries the required placeholders.
func ValidateTemplate(name, content string) error {
	var missing []string
	for _, p := range RequiredPlaceholders {
		if !strings.Contains(content, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %q lacks %s", ErrIncompleteTemplate, name, strings.Join(missing, ", "))
	}
	return nil
}
