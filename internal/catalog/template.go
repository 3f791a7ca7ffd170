package catalog

import "strings"

// Suffix is the file extension every template in the catalog carries.
const Suffix = ".gitignore"

// Template represents one *.gitignore file in the catalog.
type Template struct {
	// Name is the file name without the .gitignore suffix, case preserved (e.g. "Go")
	Name string `json:"name"`

	// FileName is the backing file name inside the catalog root (e.g. "Go.gitignore")
	FileName string `json:"file_name"`

	// Comparator is the lower-cased Name, used only for matching
	Comparator string `json:"-"`
}

// NewTemplate returns the template backed by the given file name.
func NewTemplate(fileName string) Template {
	name := strings.TrimSuffix(fileName, Suffix)
	return Template{
		Name:       name,
		FileName:   fileName,
		Comparator: Normalize(name),
	}
}

// Normalize lower-cases a template name or user token for comparison.
// Whitespace is significant: template names never contain any, so a padded
// token must not match.
func Normalize(s string) string {
	return strings.ToLower(s)
}

// IsTemplateFile reports whether a base file name looks like a template:
// it ends in .gitignore and has a non-empty stem.
func IsTemplateFile(fileName string) bool {
	return strings.HasSuffix(fileName, Suffix) && len(fileName) > len(Suffix)
}
