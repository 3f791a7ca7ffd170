// Package alfred renders Script Filter results in the JSON format Alfred reads from stdout.
package alfred

import (
	"encoding/json"
	"io"
)

// ItemType tells Alfred how to treat an item's arg.
type ItemType string

const (
	TypeDefault ItemType = "default"
	TypeFile    ItemType = "file"
)

// Icon is an item icon. Type "fileicon" asks Alfred for the icon of the file at Path.
type Icon struct {
	Type string `json:"type,omitempty"`
	Path string `json:"path"`
}

// Item is one row in Alfred's result list.
type Item struct {
	UID          string   `json:"uid,omitempty"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Arg          string   `json:"arg,omitempty"`
	Autocomplete string   `json:"autocomplete,omitempty"`
	Type         ItemType `json:"type,omitempty"`
	Icon         *Icon    `json:"icon,omitempty"`

	// Valid is a pointer so that an unset value keeps Alfred's default (true).
	Valid *bool `json:"valid,omitempty"`
}

// NewItem returns an item with the given title.
func NewItem(title string) Item {
	return Item{Title: title}
}

// WithSubtitle sets the subtitle.
func (i Item) WithSubtitle(s string) Item {
	i.Subtitle = s
	return i
}

// WithArg sets the value passed to the next workflow object.
func (i Item) WithArg(arg string) Item {
	i.Arg = arg
	return i
}

// WithAutocomplete sets the text Alfred puts in the input field on tab.
func (i Item) WithAutocomplete(s string) Item {
	i.Autocomplete = s
	return i
}

// WithValid marks whether actioning the item runs the workflow.
func (i Item) WithValid(valid bool) Item {
	i.Valid = &valid
	return i
}

// AsFile marks the arg as a file path and shows that file's icon.
func (i Item) AsFile(path string) Item {
	i.Type = TypeFile
	i.Icon = &Icon{Type: "fileicon", Path: path}
	return i
}

// Response is the top-level Script Filter document.
type Response struct {
	Items []Item `json:"items"`
}

// Write encodes items as a Script Filter response.
func Write(w io.Writer, items ...Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Response{Items: items})
}
