package usecase

import (
	"os"
)

// Placeholders substituted into the README template.
const (
	PlaceholderParseResults = "parse_results_table"
	PlaceholderWriteResults = "write_results_table"
)

// ExpandTemplate substitutes $name and ${name} from values. "$$" yields a
// literal "$" and unknown names are left as "$name".
func ExpandTemplate(template string, values map[string]string) string {
	return os.Expand(template, func(name string) string {
		if name == "$" {
			return "$"
		}
		if v, ok := values[name]; ok {
			return v
		}
		return "$" + name
	})
}
