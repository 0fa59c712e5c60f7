package plist

import (
	"github.com/beevik/etree"

	"github.com/arthur-debert/macappbundler/pkg/errors"
	"github.com/arthur-debert/macappbundler/pkg/types"
)

// Entry is one top level key of a property list dictionary.
type Entry struct {
	Key string `json:"key" yaml:"key"`
	// Type is the value element name: string, true, false, integer, array, dict...
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Document is a parsed Info.plist.
type Document struct {
	Entries []Entry
}

// Get returns the value of key and whether it was present.
func (d *Document) Get(key string) (string, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Parse reads the top level dictionary of an XML property list.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrPlistInvalid, "Info.plist is not valid XML")
	}

	root := doc.SelectElement("plist")
	if root == nil {
		return nil, errors.New(errors.ErrPlistInvalid, "Info.plist has no <plist> root element")
	}
	dict := root.SelectElement("dict")
	if dict == nil {
		return nil, errors.New(errors.ErrPlistInvalid, "Info.plist has no top level <dict>")
	}

	children := dict.ChildElements()
	result := &Document{}
	for i := 0; i < len(children); i++ {
		keyEl := children[i]
		if keyEl.Tag != "key" {
			return nil, errors.Newf(errors.ErrPlistInvalid, "expected <key>, found <%s>", keyEl.Tag)
		}
		if i+1 >= len(children) {
			return nil, errors.Newf(errors.ErrPlistInvalid, "key %q has no value", keyEl.Text()).
				WithDetail("key", keyEl.Text())
		}
		i++
		valueEl := children[i]

		entry := Entry{Key: keyEl.Text(), Type: valueEl.Tag}
		switch valueEl.Tag {
		case "string", "integer", "real", "date", "data":
			entry.Value = valueEl.Text()
		case "true", "false":
			entry.Value = valueEl.Tag
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// Inspect parses the Info.plist at path.
func Inspect(fs types.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot read %s", path).
			WithDetail("path", path)
	}
	doc, err := Parse(data)
	if err != nil {
		if be, ok := err.(*errors.BundlerError); ok {
			return nil, be.WithDetail("path", path)
		}
		return nil, err
	}
	return doc, nil
}
