package sqlite

import (
	"strings"

	"github.com/benjamonnguyen/worklog-go"
)

var ErrNotFound = worklog.ErrNotFound

type Scannable interface {
	Scan(dest ...any) error
}

// GenerateParameters returns a parenthesized list of n placeholders, e.g. "(?, ?, ?)".
func GenerateParameters(n int) string {
	if n <= 0 {
		return "()"
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}
