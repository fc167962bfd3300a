// Package errors derives stable labels from Go errors for metric tagging.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"
)

// Classify reduces an error to a label-safe type name for metrics. The chain
// is unwrapped to the innermost cause so wrappers added on the way up do not
// fragment the label space.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	for {
		inner := goerrors.Unwrap(err)
		if inner == nil {
			break
		}
		err = inner
	}

	return labelName(reflect.TypeOf(err))
}

func labelName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
