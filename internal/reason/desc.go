package reason

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// DescKind is the syntactic category a reason describes.
type DescKind uint8

const (
	DescUnknown DescKind = iota
	DescString
	DescNumber
	DescBoolean
	DescBigInt
	DescVoid
	DescNull
	DescStringLit
	DescNumberLit
	DescBooleanLit
	DescArray
	DescArrayLit
	DescTuple
	DescObject
	DescObjectLit
	DescFunction
	DescClass
	DescInstance
	DescUnion
	DescIntersection
	DescAny
	DescMixed
	DescEmpty
	DescIdentifier
	DescCode
	DescProperty
	DescParameter
	DescTypeParam
	DescTypeAlias
	DescModule
	DescCustom
)

func (k DescKind) String() string {
	switch k {
	case DescUnknown:
		return "unknown"
	case DescString:
		return "string"
	case DescNumber:
		return "number"
	case DescBoolean:
		return "boolean"
	case DescBigInt:
		return "bigint"
	case DescVoid:
		return "void"
	case DescNull:
		return "null"
	case DescStringLit:
		return "string-literal"
	case DescNumberLit:
		return "number-literal"
	case DescBooleanLit:
		return "boolean-literal"
	case DescArray:
		return "array"
	case DescArrayLit:
		return "array-literal"
	case DescTuple:
		return "tuple"
	case DescObject:
		return "object"
	case DescObjectLit:
		return "object-literal"
	case DescFunction:
		return "function"
	case DescClass:
		return "class"
	case DescInstance:
		return "instance"
	case DescUnion:
		return "union"
	case DescIntersection:
		return "intersection"
	case DescAny:
		return "any"
	case DescMixed:
		return "mixed"
	case DescEmpty:
		return "empty"
	case DescIdentifier:
		return "identifier"
	case DescCode:
		return "code"
	case DescProperty:
		return "property"
	case DescParameter:
		return "parameter"
	case DescTypeParam:
		return "type-param"
	case DescTypeAlias:
		return "type-alias"
	case DescModule:
		return "module"
	case DescCustom:
		return "custom"
	default:
		return fmt.Sprintf("DescKind(%d)", k)
	}
}

// ParseDescKind is the inverse of DescKind.String.
func ParseDescKind(s string) (DescKind, bool) {
	for k := DescUnknown; k <= DescCustom; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return DescUnknown, false
}

// Description tells what sits at a location.
// Name holds the identifier/property/alias name, Value the literal or code snippet.
// Inner is set for aliases that were unwrapped ("primed" identifiers): the alias
// keeps its own name for display while predicates look through to Inner.
type Description struct {
	Kind  DescKind
	Name  string
	Value string
	Inner *Description
}

func Desc(kind DescKind) Description {
	return Description{Kind: kind}
}

// Named builds a description carrying an NFC-normalized name.
func Named(kind DescKind, name string) Description {
	return Description{Kind: kind, Name: norm.NFC.String(name)}
}

// Literal builds a literal or code description.
func Literal(kind DescKind, value string) Description {
	return Description{Kind: kind, Value: norm.NFC.String(value)}
}

// Alias wraps inner under a type alias name.
func Alias(name string, inner Description) Description {
	return Description{Kind: DescTypeAlias, Name: norm.NFC.String(name), Inner: &inner}
}

// Unwrap strips alias layers.
func (d Description) Unwrap() Description {
	for d.Kind == DescTypeAlias && d.Inner != nil {
		d = *d.Inner
	}
	return d
}

// IsCode reports whether the whole description renders as a code span.
func (d Description) IsCode() bool {
	switch d.Kind {
	case DescIdentifier, DescCode, DescParameter, DescTypeParam, DescTypeAlias:
		return true
	default:
		return false
	}
}

// Display returns the visible text without code quotes and whether it is code.
func (d Description) Display() (string, bool) {
	switch d.Kind {
	case DescIdentifier, DescParameter, DescTypeParam, DescTypeAlias:
		return d.Name, true
	case DescCode:
		return d.Value, true
	case DescString:
		return "string", false
	case DescNumber:
		return "number", false
	case DescBoolean:
		return "boolean", false
	case DescBigInt:
		return "bigint", false
	case DescVoid:
		return "undefined", false
	case DescNull:
		return "null", false
	case DescStringLit:
		return fmt.Sprintf("string literal `%s`", d.Value), false
	case DescNumberLit:
		return fmt.Sprintf("number literal `%s`", d.Value), false
	case DescBooleanLit:
		return fmt.Sprintf("boolean literal `%s`", d.Value), false
	case DescArray:
		return "array type", false
	case DescArrayLit:
		return "array literal", false
	case DescTuple:
		return "tuple type", false
	case DescObject:
		return "object type", false
	case DescObjectLit:
		return "object literal", false
	case DescFunction:
		if d.Name != "" {
			return fmt.Sprintf("function `%s`", d.Name), false
		}
		return "function", false
	case DescClass:
		return fmt.Sprintf("class `%s`", d.Name), false
	case DescInstance:
		return fmt.Sprintf("`%s`", d.Name), false
	case DescUnion:
		return "union type", false
	case DescIntersection:
		return "intersection type", false
	case DescAny:
		return "any", false
	case DescMixed:
		return "mixed", false
	case DescEmpty:
		return "empty", false
	case DescProperty:
		if d.Name == "" {
			return "indexer property", false
		}
		return fmt.Sprintf("property `%s`", d.Name), false
	case DescModule:
		return fmt.Sprintf("module `%s`", d.Name), false
	case DescCustom:
		return d.Value, false
	case DescUnknown:
		if d.Value != "" {
			return d.Value, false
		}
		return "value", false
	default:
		panic(fmt.Sprintf("reason: unhandled description kind %s", d.Kind))
	}
}

// String renders the description as a single line, code in backticks.
func (d Description) String() string {
	text, code := d.Display()
	if code {
		return "`" + text + "`"
	}
	return text
}

// IsScalar reports string/number/boolean/void/null-like descriptions, literals included.
func (d Description) IsScalar() bool {
	switch d.Unwrap().Kind {
	case DescString, DescNumber, DescBoolean, DescBigInt, DescVoid, DescNull,
		DescStringLit, DescNumberLit, DescBooleanLit:
		return true
	default:
		return false
	}
}

// IsArray reports array types, array literals and tuples.
func (d Description) IsArray() bool {
	switch d.Unwrap().Kind {
	case DescArray, DescArrayLit, DescTuple:
		return true
	default:
		return false
	}
}
