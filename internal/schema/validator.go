package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaError reports every way a payload failed to match a shape.
type SchemaError struct {
	Shape   string
	Details []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("payload does not match %s shape: %s", e.Shape, strings.Join(e.Details, "; "))
}

var compiled sync.Map // shape name -> *gojsonschema.Schema

func compile(s Shape) (*gojsonschema.Schema, error) {
	if cached, ok := compiled.Load(s.Name); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", s.Name, err)
	}
	compiled.Store(s.Name, sch)
	return sch, nil
}

// Validate checks raw against the shape and, only if every rule holds,
// decodes it into out. Nothing is written to out on failure.
func Validate(raw []byte, s Shape, out interface{}) error {
	doc := []byte(Clean(string(raw)))
	if len(doc) == 0 {
		return &SchemaError{Shape: s.Name, Details: []string{"empty payload"}}
	}
	if !gjson.ValidBytes(doc) {
		return &SchemaError{Shape: s.Name, Details: []string{"payload is not valid JSON"}}
	}

	sch, err := compile(s)
	if err != nil {
		return err
	}
	result, err := sch.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &SchemaError{Shape: s.Name, Details: []string{err.Error()}}
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return &SchemaError{Shape: s.Name, Details: details}
	}

	if dups := duplicateKeys(gjson.ParseBytes(doc), s.Root, "(root)"); len(dups) > 0 {
		return &SchemaError{Shape: s.Name, Details: dups}
	}

	if err := json.Unmarshal(doc, out); err != nil {
		return &SchemaError{Shape: s.Name, Details: []string{err.Error()}}
	}
	return nil
}

// ValidateValue runs an in-memory value through the same checks.
func ValidateValue(v interface{}, s Shape, out interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &SchemaError{Shape: s.Name, Details: []string{err.Error()}}
	}
	return Validate(raw, s, out)
}

func duplicateKeys(value gjson.Result, f Field, path string) []string {
	var out []string
	switch f.Kind {
	case KindObject:
		for _, child := range f.Fields {
			out = append(out, duplicateKeys(value.Get(child.Name), child, path+"."+child.Name)...)
		}
	case KindObjectList:
		seen := map[string]bool{}
		for i, item := range value.Array() {
			if f.UniqueKey != "" {
				key := item.Get(f.UniqueKey).String()
				if seen[key] {
					out = append(out, fmt.Sprintf("%s.%d: duplicate %s %q", path, i, f.UniqueKey, key))
				}
				seen[key] = true
			}
			for _, child := range f.Fields {
				if child.Kind == KindObject || child.Kind == KindObjectList {
					out = append(out, duplicateKeys(item.Get(child.Name), child, fmt.Sprintf("%s.%d.%s", path, i, child.Name))...)
				}
			}
		}
	}
	return out
}

// Clean strips markdown code fences some models wrap around JSON output.
func Clean(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
