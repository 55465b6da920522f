package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"TODOLIST_BACK-END/internal/dto"
)

const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes a JSON object body into dst one member at a time and
// returns a FieldError for every member that does not fit dst. bodyOK is
// false when the body itself is unusable (empty, malformed, not an object,
// trailing data); fields then holds a single "body" entry and the caller
// should report it as is.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) (fields []dto.FieldError, bodyOK bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var members map[string]json.RawMessage
	if err := dec.Decode(&members); err != nil {
		return []dto.FieldError{decodeFieldError(err)}, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return []dto.FieldError{{Field: "body", Message: "unexpected data after JSON object"}}, false
	}
	if members == nil {
		return []dto.FieldError{{Field: "body", Message: "must be an object"}}, false
	}

	for _, key := range memberOrder(members, dst) {
		member, err := json.Marshal(map[string]json.RawMessage{key: members[key]})
		if err != nil {
			return []dto.FieldError{decodeFieldError(err)}, false
		}
		if err := json.Unmarshal(member, dst); err != nil {
			fe := decodeFieldError(err)
			if fe.Field == "body" {
				fe.Field = key
			}
			fields = append(fields, fe)
		}
	}
	return fields, true
}

// HasField reports whether fields already names field.
func HasField(fields []dto.FieldError, field string) bool {
	for _, f := range fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// memberOrder sorts keys by the position of the matching field in dst, so
// errors come back in declaration order. Unknown keys go last.
func memberOrder(members map[string]json.RawMessage, dst interface{}) []string {
	position := map[string]int{}
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil && t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if name == "" {
				name = t.Field(i).Name
			}
			position[name] = i
		}
	}

	keys := make([]string, 0, len(members))
	for key := range members {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, iok := position[keys[i]]
		pj, jok := position[keys[j]]
		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func decodeFieldError(err error) dto.FieldError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return dto.FieldError{Field: "body", Message: "field required"}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return dto.FieldError{Field: field, Message: "must be " + jsonKind(typeErr.Type)}
	case errors.As(err, &syntaxErr):
		return dto.FieldError{Field: "body", Message: "invalid JSON at offset " + strconv.FormatInt(syntaxErr.Offset, 10)}
	case errors.As(err, &maxErr):
		return dto.FieldError{Field: "body", Message: "request body too large"}
	default:
		return dto.FieldError{Field: "body", Message: "invalid JSON"}
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a valid " + t.Kind().String()
	}
}

// ParsePathID parses an integer path parameter such as {todo_id}.
func ParsePathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
