// Package schema describes the JSON shapes expected back from the generative
// model and validates raw payloads against them.
package schema

type Kind string

const (
	KindNumber     Kind = "number"
	KindString     Kind = "string"
	KindStringList Kind = "string-list"
	KindEnum       Kind = "enum"
	KindObject     Kind = "object"
	KindObjectList Kind = "object-list"
)

// Field describes one expected value. Min and Max bound numbers, Enum lists
// the accepted literals, Fields describes nested objects and list elements.
// UniqueKey, on an object list, names a string field that must not repeat.
type Field struct {
	Name        string
	Kind        Kind
	Description string
	Min         *float64
	Max         *float64
	Enum        []string
	Fields      []Field
	Optional    bool
	UniqueKey   string
}

// Shape is a named root descriptor. The root is either an object or an
// object list.
type Shape struct {
	Name string
	Root Field
}

func Number(name string) Field { return Field{Name: name, Kind: KindNumber} }

func String(name string) Field { return Field{Name: name, Kind: KindString} }

func StringList(name string) Field { return Field{Name: name, Kind: KindStringList} }

func Enum(name string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Enum: values}
}

func Object(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObject, Fields: fields}
}

func ObjectList(name string, fields ...Field) Field {
	return Field{Name: name, Kind: KindObjectList, Fields: fields}
}

// Range bounds a number field to [min, max].
func (f Field) Range(min, max float64) Field {
	f.Min, f.Max = &min, &max
	return f
}

// AtLeast bounds a number field from below only.
func (f Field) AtLeast(min float64) Field {
	f.Min = &min
	return f
}

func (f Field) Opt() Field {
	f.Optional = true
	return f
}

func (f Field) Unique(key string) Field {
	f.UniqueKey = key
	return f
}

func (f Field) Describe(desc string) Field {
	f.Description = desc
	return f
}

// JSONSchema renders the shape as a JSON Schema document.
func (s Shape) JSONSchema() map[string]interface{} {
	doc := fieldSchema(s.Root)
	doc["$schema"] = "http://json-schema.org/draft-07/schema#"
	return doc
}

func fieldSchema(f Field) map[string]interface{} {
	out := map[string]interface{}{}
	if f.Description != "" {
		out["description"] = f.Description
	}
	switch f.Kind {
	case KindNumber:
		out["type"] = "number"
		if f.Min != nil {
			out["minimum"] = *f.Min
		}
		if f.Max != nil {
			out["maximum"] = *f.Max
		}
	case KindString:
		out["type"] = "string"
	case KindStringList:
		out["type"] = "array"
		out["items"] = map[string]interface{}{"type": "string"}
	case KindEnum:
		out["type"] = "string"
		out["enum"] = f.Enum
	case KindObject:
		objectSchema(out, f.Fields)
	case KindObjectList:
		item := map[string]interface{}{}
		objectSchema(item, f.Fields)
		out["type"] = "array"
		out["items"] = item
	}
	return out
}

func objectSchema(out map[string]interface{}, fields []Field) {
	props := make(map[string]interface{}, len(fields))
	required := make([]string, 0, len(fields))
	for _, child := range fields {
		props[child.Name] = fieldSchema(child)
		if !child.Optional {
			required = append(required, child.Name)
		}
	}
	out["type"] = "object"
	out["properties"] = props
	if len(required) > 0 {
		out["required"] = required
	}
}
