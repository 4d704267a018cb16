package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"hotelops/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(fieldName)

	// gin's binding validator reports the same names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName prefers the json, then form, tag so errors name fields the way
// clients send them.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string)
	for _, fe := range verrs {
		errs[fe.Namespace()] = fe.Tag()
	}
	return errs
}

// Check is Validate folded into a domain.ErrValidation.
func Check(v interface{}) error {
	errs := Validate(v)
	if len(errs) == 0 {
		return nil
	}

	fields := make([]string, 0, len(errs))
	for f, tag := range errs {
		fields = append(fields, fmt.Sprintf("%s(%s)", f, tag))
	}
	sort.Strings(fields)
	return domain.Validationf("invalid fields: %s", strings.Join(fields, ", "))
}

// BindingDetails describes a gin binding failure as field -> failed rule.
// Body-level failures (malformed JSON, wrong types) are reported under "body".
func BindingDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: "type"}
	}
	return map[string]string{"body": "malformed"}
}
