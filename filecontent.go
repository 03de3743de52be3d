// FILE: lixenwraith/argbind/filecontent.go
package argbind

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	yamlDocumentType = reflect.TypeOf(yaml.Node{})
	yamlElementType  = reflect.TypeOf(&yaml.Node{})
	structuredMap    = reflect.TypeOf(map[string]any{})
)

// fileContentConverter treats the value as a path and converts the file's content.
// It never declines once ReadFileContent is set.
type fileContentConverter struct {
	fs    FileSystem
	env   Environment
	lines Converter // converts each line of a custom-typed file
}

func (c *fileContentConverter) Kind() ConverterKind { return KindFileContent }

func (c *fileContentConverter) TryConvert(value string, target TargetType, flags ArgumentFlags) (Result, error) {
	if !flags.Has(ReadFileContent) {
		return Unsuccessful, nil
	}

	path := c.env.ExpandEnvironmentVariables(value)
	scalar := target.Scalar()

	switch {
	case !target.IsVector() && scalar == stringType:
		text, err := c.fs.ReadAllText(path)
		if err != nil {
			return Unsuccessful, parseErrorf(err, "cannot read file content")
		}
		return Successful(reflect.ValueOf(text)), nil

	case target.IsVector() && scalar.Kind() == reflect.String:
		lines, err := c.fs.ReadAllLines(path)
		if err != nil {
			return Unsuccessful, parseErrorf(err, "cannot read file lines")
		}
		values := make([]reflect.Value, len(lines))
		for i, line := range lines {
			values[i] = boxAs(line, scalar)
		}
		return Successful(values...), nil

	case target.IsVector() && isByte(scalar):
		data, err := c.fs.ReadAllBytes(path)
		if err != nil {
			return Unsuccessful, parseErrorf(err, "cannot read file bytes")
		}
		values := make([]reflect.Value, len(data))
		for i, b := range data {
			values[i] = boxAs(b, scalar)
		}
		return Successful(values...), nil

	case !target.IsVector() && (scalar == yamlDocumentType || scalar == yamlElementType):
		doc, err := c.readDocument(path)
		if err != nil {
			return Unsuccessful, err
		}
		if scalar == yamlDocumentType {
			return Successful(reflect.ValueOf(*doc)), nil
		}
		if len(doc.Content) == 0 {
			return Unsuccessful, parseErrorf(nil, "document %s has no root element", path)
		}
		return Successful(reflect.ValueOf(doc.Content[0])), nil

	case !target.IsVector() && scalar == structuredMap:
		data, err := c.fs.ReadAllBytes(path)
		if err != nil {
			return Unsuccessful, parseErrorf(err, "cannot read structured file")
		}
		m, err := decodeStructured(path, data)
		if err != nil {
			return Unsuccessful, parseErrorf(err, "cannot parse structured file %s", path)
		}
		return Successful(reflect.ValueOf(m)), nil
	}

	return c.convertLines(path, target)
}

// readDocument parses the file into a document node tree
func (c *fileContentConverter) readDocument(path string) (*yaml.Node, error) {
	text, err := c.fs.ReadAllText(path)
	if err != nil {
		return nil, parseErrorf(err, "cannot read document")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, parseErrorf(err, "cannot parse document %s", path)
	}
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	return &doc, nil
}

// convertLines converts each non-blank trimmed line to the scalar type and flattens the results.
// A decline on any line is fatal.
func (c *fileContentConverter) convertLines(path string, target TargetType) (Result, error) {
	lines, err := c.fs.ReadAllLines(path)
	if err != nil {
		return Unsuccessful, parseErrorf(err, "cannot read file lines")
	}

	element := target.scalarTarget()
	var values []reflect.Value
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res, err := c.lines.TryConvert(line, element, NoFlags)
		if err != nil {
			return Unsuccessful, err
		}
		if !res.Ok() {
			return Unsuccessful, parseErrorf(nil, "cannot convert %q to %s", truncateValue(line), element)
		}
		values = append(values, res.Values()...)
	}
	return Successful(values...), nil
}
