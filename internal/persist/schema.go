package persist

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/todos/internal/model"
)

//go:embed todo.schema.json
var todoSchemaJSON string

const todoSchemaURL = "https://github.com/Makepad-fr/todos/todo.schema.json"

var todoSchema = mustCompileTodoSchema()

func mustCompileTodoSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(todoSchemaURL, strings.NewReader(todoSchemaJSON)); err != nil {
		panic(fmt.Sprintf("persist: add todo schema: %v", err))
	}
	schema, err := compiler.Compile(todoSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("persist: compile todo schema: %v", err))
	}
	return schema
}

// ValidateRecord turns one decoded JSON value into a Todo. It fails with a
// *ShapeError unless v is an object with a string label and a boolean
// isCompleted. Unknown fields are dropped.
func ValidateRecord(index int, v any) (model.Todo, error) {
	if err := todoSchema.Validate(v); err != nil {
		return model.Todo{}, shapeErrorFrom(index, err)
	}
	obj := v.(map[string]any)
	return model.Todo{
		Label:       obj["label"].(string),
		IsCompleted: obj["isCompleted"].(bool),
	}, nil
}

// shapeErrorFrom reports the first leaf cause of a schema failure.
func shapeErrorFrom(index int, err error) *ShapeError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ShapeError{Index: index, Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ShapeError{
		Index: index,
		Path:  pointerToPath(ve.InstanceLocation),
		Err:   errors.New(ve.Message),
	}
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	return strings.ReplaceAll(ptr, "/", ".")
}
