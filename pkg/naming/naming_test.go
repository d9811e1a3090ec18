package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNames(ttt *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "wrapper", got: WrapperName("Widget"), want: "WidgetMimic"},
		{name: "qualified", got: QualifiedWrapperName("a.b", "Widget"), want: "a.b.WidgetMimic"},
		{name: "pascal lower", got: PascalCase("count"), want: "Count"},
		{name: "pascal upper", got: PascalCase("Count"), want: "Count"},
		{name: "pascal single", got: PascalCase("x"), want: "X"},
		{name: "pascal empty", got: PascalCase(""), want: ""},
		{name: "pascal unicode", got: PascalCase("ärger"), want: "Ärger"},
		{name: "getter", got: GetterName("name"), want: "GetName"},
		{name: "setter", got: SetterName("name"), want: "SetName"},
		{name: "constructor", got: ConstructorName("Widget"), want: "NewWidgetMimic"},
		{name: "file", got: FileName("Widget"), want: "widget_mimic.go"},
		{name: "file camel", got: FileName("UserAccount"), want: "user_account_mimic.go"},
		{name: "file acronym", got: FileName("HTTPServer"), want: "http_server_mimic.go"},
		{name: "file trailing acronym", got: FileName("ServeHTTP"), want: "serve_http_mimic.go"},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.got)
		})
	}
}
