package textutil

import (
	"regexp"
	"strings"
)

var separatorRegex = regexp.MustCompile(`[\s_-]+`)

// NormalizeConstant turns free text into CONSTANT_CASE, runs of whitespace,
// dashes and underscores collapse into a single underscore.
func NormalizeConstant(text string) string {
	text = strings.Trim(text, " \n\t_-")
	text = separatorRegex.ReplaceAllString(text, "_")
	return strings.ToUpper(text)
}
