package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/signalfx/jenkins-metrics/pkg/utils"
	validator "gopkg.in/go-playground/validator.v9"
)

// Validatable should be implemented by config structs that want to provide
// validation beyond the struct tags.
type Validatable interface {
	Validate() error
}

// ValidateCustomConfig calls the Validate method of conf if it has one
func ValidateCustomConfig(conf interface{}) error {
	if v, ok := conf.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// ValidateStruct uses the `validate` struct tags to do standard validation.
// Error messages name the offending field by its YAML path (e.g.
// `sink.type`) rather than its Go name.
func ValidateStruct(confStruct interface{}) error {
	validate := validator.New()
	err := validate.Struct(confStruct)
	if err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			var msgs []string
			for _, e := range ves {
				fieldName := yamlPath(e.StructNamespace(), confStruct)
				msgs = append(msgs, fmt.Sprintf("Validation error in field '%s': %s", fieldName, e.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// yamlPath converts a validator namespace like `Config.Sink.Type` to the
// dotted YAML key path, skipping fields that are inlined
func yamlPath(namespace string, st interface{}) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		// The first part is the name of the top level type
		parts = parts[1:]
	}

	var names []string
	cur := reflect.Indirect(reflect.ValueOf(st)).Interface()
	for _, p := range parts {
		field, ok := reflect.TypeOf(cur).FieldByName(p)
		if !ok {
			names = append(names, p)
			break
		}
		if name := utils.YAMLNameOfField(field); name != "" {
			names = append(names, name)
		}
		if field.Type.Kind() != reflect.Struct {
			break
		}
		cur = reflect.New(field.Type).Elem().Interface()
	}
	return strings.Join(names, ".")
}
