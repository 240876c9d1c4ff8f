// Package validate provides struct-tag validation for request inputs.
//
// Rules (comma-separated in the `validate` tag):
//
//	required      field must not be zero/empty
//	nullable      if empty, skip the remaining rules for this field
//	email         valid email address
//	uuid          valid UUID
//	alpha_dash    letters, digits, hyphens, underscores
//	min=N         string: min char length | number: min value
//	max=N         string: max char length | number: max value
//	gte=N         number >= N
//	lte=N         number <= N
//
// Example:
//
//	type Input struct {
//	    Username string `json:"username" validate:"required,alpha_dash,min=3,max=150"`
//	    Email    string `json:"email"    validate:"required,email"`
//	    Score    int    `json:"score"    validate:"gte=0,lte=100"`
//	}
package validate

import (
	"fmt"
	"net/mail"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors reports whether the map returned by Struct contains failures.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func applyRule(rule, name string, value reflect.Value) string {
	key, arg, _ := strings.Cut(rule, "=")

	switch key {
	case "required":
		if isEmpty(value) {
			return fmt.Sprintf("%s is required", name)
		}
	case "email":
		if _, err := mail.ParseAddress(asString(value)); err != nil {
			return fmt.Sprintf("%s must be a valid email address", name)
		}
	case "uuid":
		if _, err := uuid.Parse(asString(value)); err != nil {
			return fmt.Sprintf("%s must be a valid UUID", name)
		}
	case "alpha_dash":
		for _, r := range asString(value) {
			letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			digit := r >= '0' && r <= '9'
			if !letter && !digit && r != '-' && r != '_' {
				return fmt.Sprintf("%s may only contain letters, digits, dashes and underscores", name)
			}
		}
	case "min":
		n, _ := strconv.ParseFloat(arg, 64)
		if size(value) < n {
			if isStringKind(value) {
				return fmt.Sprintf("%s must be at least %s characters", name, arg)
			}
			return fmt.Sprintf("%s must be at least %s", name, arg)
		}
	case "max":
		n, _ := strconv.ParseFloat(arg, 64)
		if size(value) > n {
			if isStringKind(value) {
				return fmt.Sprintf("%s may not be longer than %s characters", name, arg)
			}
			return fmt.Sprintf("%s may not be greater than %s", name, arg)
		}
	case "gte":
		n, _ := strconv.ParseFloat(arg, 64)
		if numeric(value) < n {
			return fmt.Sprintf("%s must be at least %s", name, arg)
		}
	case "lte":
		n, _ := strconv.ParseFloat(arg, 64)
		if numeric(value) > n {
			return fmt.Sprintf("%s may not be greater than %s", name, arg)
		}
	}

	return ""
}

func hasRule(rules []string, want string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == want {
			return true
		}
	}
	return false
}

// jsonFieldName prefers the json tag so error keys match the wire format.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// size is the comparable magnitude of a value: char length for strings,
// numeric value otherwise.
func size(v reflect.Value) float64 {
	if isStringKind(v) {
		return float64(len([]rune(v.String())))
	}
	return numeric(v)
}

func isStringKind(v reflect.Value) bool { return v.Kind() == reflect.String }

func numeric(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.String:
		n, _ := strconv.ParseFloat(v.String(), 64)
		return n
	default:
		return 0
	}
}

func asString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}
