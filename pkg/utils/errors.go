package utils

import (
	"sort"
	"strings"
)

// FieldErrors collects validation messages keyed by input field. It
// satisfies error so services can return it directly and handlers can
// pick it out with errors.As.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		b.WriteString(": " + f + " " + strings.Join(fe[f], "; "))
	}
	return b.String()
}
