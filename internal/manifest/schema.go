package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError aggregates the schema violations found in one manifest file.
type SchemaError struct {
	Source   string
	Problems []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.Source, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d schema violations:\n  %s",
		e.Source, len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// validateDocument unifies the decoded manifest with the embedded #Document
// schema and collects every violation rather than stopping at the first -
// an author fixing a manifest wants the whole list.
func validateDocument(source string, raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		// The schema ships inside the binary; failing to compile it is a
		// build defect, not an input error.
		return fmt.Errorf("internal: manifest schema does not compile: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Document"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("internal: #Document missing from manifest schema: %w", err)
	}

	data := ctx.Encode(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("%s: cannot encode manifest for validation: %w", source, err)
	}

	unified := def.Unify(data)
	err := unified.Validate(cue.Concrete(true), cue.Final())
	if err == nil {
		return nil
	}

	schemaErr := &SchemaError{Source: source}
	for _, e := range cueerrors.Errors(err) {
		problem := e.Error()
		if pos := e.Position(); pos.IsValid() {
			problem = fmt.Sprintf("%s (%s)", problem, pos)
		}
		schemaErr.Problems = append(schemaErr.Problems, problem)
	}
	return schemaErr
}
