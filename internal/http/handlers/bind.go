package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON decodes and validates the body, writing the error response itself on failure.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body is too large", nil)
	case errors.Is(err, io.EOF):
		RespondBadRequest(ctx, "Request body is empty", nil)
	default:
		RespondBadRequest(ctx, "Invalid request body", bindErrorDetails(err, out))
	}

	return false
}

func bindErrorDetails(err error, out interface{}) interface{} {
	root := structType(reflect.TypeOf(out))

	var verrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &verrs):
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   validatorPath(root, fe),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: validationMessage(fe.Tag(), fe.Param()),
			})
		}
		return gin.H{"fields": fields}

	case errors.As(err, &syntaxErr):
		return gin.H{"json": "invalid_json_syntax", "offset": syntaxErr.Offset}

	case errors.As(err, &typeErr):
		field := jsonPath(root, splitPath(typeErr.Field))
		if field == "" {
			field = strings.TrimSpace(typeErr.Field)
		}

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
			}},
		}

	default:
		return gin.H{"reason": err.Error()}
	}
}

// validatorPath turns "PayslipRequest.User.HourlyRate" into "user.hourly_rate".
func validatorPath(root reflect.Type, fe validator.FieldError) string {
	parts := splitPath(fe.StructNamespace())
	if len(parts) > 0 && root != nil && parts[0] == root.Name() {
		parts = parts[1:]
	}

	if p := jsonPath(root, parts); p != "" {
		return p
	}
	return fe.Field()
}

func splitPath(dotted string) []string {
	dotted = strings.TrimSpace(dotted)
	if dotted == "" {
		return nil
	}
	return strings.Split(dotted, ".")
}

// jsonPath maps Go field names to json tag names, keeping any "[i]" suffix.
func jsonPath(root reflect.Type, parts []string) string {
	out := make([]string, 0, len(parts))
	cur := root

	for _, part := range parts {
		if part == "" {
			continue
		}

		name, index := part, ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			name, index = part[:i], part[i:]
		}

		jsonName := name
		var next reflect.Type

		if cur != nil {
			if sf, ok := cur.FieldByName(name); ok {
				jsonName = jsonTagName(sf)
				next = structType(sf.Type)
			}
		}

		out = append(out, jsonName+index)
		cur = next
	}

	return strings.Join(out, ".")
}

func jsonTagName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

// structType unwraps pointers and collections down to a struct, or returns nil.
func structType(t reflect.Type) reflect.Type {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Struct:
			return t
		default:
			return nil
		}
	}
	return nil
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "min":
		return "must be at least " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
