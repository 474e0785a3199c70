package script

import (
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
)

// ValidationResult reports whether a generated script parses as Go source.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate parses the script with the Go parser and reports the first syntax
// error with its line number. The script is never executed.
func Validate(src string) ValidationResult {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "generated_test.go", src, 0)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		first := list[0]
		return ValidationResult{
			Valid: false,
			Error: fmt.Sprintf("syntax error at line %d: %s", first.Pos.Line, first.Msg),
		}
	}

	return ValidationResult{Valid: false, Error: err.Error()}
}
