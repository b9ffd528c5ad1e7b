package todo

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed items.schema.json
var itemsSchemaJSON string

const itemsSchemaURL = "items.schema.json"

var (
	itemsSchemaOnce sync.Once
	itemsSchema     *jsonschema.Schema
	itemsSchemaErr  error
)

func compiledItemsSchema() (*jsonschema.Schema, error) {
	itemsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(itemsSchemaURL, strings.NewReader(itemsSchemaJSON)); err != nil {
			itemsSchemaErr = fmt.Errorf("add items schema: %w", err)
			return
		}
		itemsSchema, itemsSchemaErr = compiler.Compile(itemsSchemaURL)
	})
	return itemsSchema, itemsSchemaErr
}

// validateWithSchema validates a decoded JSON value against the items schema.
func validateWithSchema(v interface{}) []error {
	schema, err := compiledItemsSchema()
	if err != nil {
		return []error{err}
	}
	if err := schema.Validate(v); err != nil {
		return schemaErrors(err)
	}
	return nil
}

func schemaErrors(err error) []error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []error{err}
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errs
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath turns "/2/id" into "[2].id".
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
