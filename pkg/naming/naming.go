// Package naming computes the names of generated mimics. The functions are pure
// so drivers can predict where a mimic will be written before generating it.
package naming

import (
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

const (
	Suffix        = "Mimic"
	getterPrefix  = "get"
	setterPrefix  = "set"
	ctorPrefix    = "New"
	fileExtension = "_mimic.go"
)

// PascalCase upper-cases the first character of s. The empty string is returned unchanged.
func PascalCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// WrapperName returns the simple name of the mimic for a target type, e.g. "WidgetMimic".
func WrapperName(simpleName string) string {
	return simpleName + Suffix
}

// QualifiedWrapperName joins the target package and the mimic name, e.g. "a.b.WidgetMimic".
func QualifiedWrapperName(pkg, simpleName string) string {
	return pkg + "." + WrapperName(simpleName)
}

func GetterName(field string) string {
	return PascalCase(getterPrefix) + PascalCase(field)
}

func SetterName(field string) string {
	return PascalCase(setterPrefix) + PascalCase(field)
}

// ConstructorName returns the name of the mimic constructor, e.g. "NewWidgetMimic".
func ConstructorName(simpleName string) string {
	return ctorPrefix + WrapperName(simpleName)
}

// FileName returns the file the mimic is written to, e.g. "widget_mimic.go".
func FileName(simpleName string) string {
	return strcase.ToSnake(simpleName) + fileExtension
}
