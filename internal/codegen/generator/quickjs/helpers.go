package quickjs

import (
	"errors"
	"strconv"
	"strings"

	"github.com/godotjs/javascript/internal/codegen/schema"
)

// withWhere attaches the schema location to a lookup error that has none.
func withWhere(err error, where string) error {
	var le *schema.LookupError
	if errors.As(err, &le) && le.Where == "" {
		return &schema.LookupError{Table: le.Table, Key: le.Key, Where: where}
	}
	return err
}

func argv(i int) string {
	return "argv[" + strconv.Itoa(i) + "]"
}

// argNames returns "arg0, arg1, ..." for n arguments.
func argNames(n int) string {
	names := make([]string, n)
	for i := range names {
		names[i] = "arg" + strconv.Itoa(i)
	}
	return strings.Join(names, ", ")
}
