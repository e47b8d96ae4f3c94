// Package bind provides query-string bind and validation helpers for handlers
package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "packrat/internal/platform/errors"

	"github.com/go-playground/validator/v10"
)

var (
	vOnce sync.Once
	v     *validator.Validate
)

// Validator returns the singleton validator configured for form tag names
func Validator() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// prefer form tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("form")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
	})
	return v
}

// Query populates dst from r's URL query parameters using `form` struct tags,
// then validates it. Supported field kinds are string, int, and bool; anything
// else is a programmer error and panics
func Query(r *http.Request, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic("bind: Query requires a pointer to struct")
	}
	rv = rv.Elem()
	rt := rv.Type()

	q := r.URL.Query()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("form")
		if tag == "" || tag == "-" {
			continue
		}
		name := tag
		if idx := strings.Index(name, ","); idx >= 0 {
			name = name[:idx]
		}
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		f := rv.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(raw)
		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return perr.WithField(perr.InvalidArgf("expected an integer"), name)
			}
			f.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return perr.WithField(perr.InvalidArgf("expected a boolean"), name)
			}
			f.SetBool(b)
		default:
			panic("bind: unsupported query field kind " + f.Kind().String())
		}
	}

	if err := Validator().Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if ok := asValidationErrors(err, &ve); ok && len(ve) > 0 {
			fe := ve[0]
			return perr.WithField(perr.Validationf("failed on the %q rule", fe.Tag()), fe.Field())
		}
		return perr.Validationf("invalid query parameters")
	}
	return nil
}

func asValidationErrors(err error, out *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*out = ve
	}
	return ok
}
