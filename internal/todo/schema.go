package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaURL identifies the embedded schema in validation messages.
const SchemaURL = "tasklist://tasks.schema.json"

// maxID is the schema's id maximum, the largest integer a JSON number holds
// exactly.
const maxID = 1<<53 - 1

// Schema is the JSON Schema of the persisted task list.
const Schema = `{
  "title": "tasklist tasks",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "integer", "maximum": 9007199254740991},
      "text": {"type": "string", "minLength": 1},
      "completed": {"type": "boolean"}
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(SchemaURL, strings.NewReader(Schema)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(SchemaURL)
	})
	return compiledSchema, compileErr
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending value
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Encode serializes tasks as a JSON array. An empty list encodes as [].
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode parses and validates a persisted task list.
// The returned error joins every ValidationError found.
func Decode(data []byte) ([]Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("parse tasks: %w", err)}
	}
	if dec.More() {
		return nil, &ValidationError{Err: errors.New("parse tasks: trailing data after array")}
	}

	s, err := schema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		return nil, errors.Join(schemaErrors(err)...)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &ValidationError{Err: fmt.Errorf("decode tasks: %w", err)}
	}

	seen := make(map[int64]int, len(tasks))
	var errs []error
	for i, t := range tasks {
		if first, dup := seen[t.ID]; dup {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (first at [%d])", t.ID, first),
			})
			continue
		}
		seen[t.ID] = i
		if strings.TrimSpace(t.Text) != t.Text {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("[%d].text", i),
				Err:  errors.New("text has surrounding whitespace"),
			})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func schemaErrors(err error) []error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var out []error
	collectSchemaErrors(&out, ve)
	return out
}

func collectSchemaErrors(out *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// jsonPointerToPath turns "/0/text" into "[0].text".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
