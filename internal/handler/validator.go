package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const notBlankTag = "notblank"

// Validator plugs go-playground/validator into echo's c.Validate. Field
// names in errors are the JSON names.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator builds a Validator with English messages. It panics if a
// translation or custom rule cannot be registered.
func NewValidator() *Validator {
	v, trans, err := newValidate()
	if err != nil {
		panic(fmt.Sprintf("validator setup: %v", err))
	}
	return &Validator{validate: v, trans: trans}
}

func newValidate() (*validator.Validate, ut.Translator, error) {
	v := validator.New()

	_en := en.New()
	trans, found := ut.New(_en, _en).GetTranslator("en")
	if !found {
		return nil, nil, errors.New("english translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, nil, fmt.Errorf("default translations: %w", err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		return nil, nil, fmt.Errorf("register %s: %w", notBlankTag, err)
	}
	if err := v.RegisterTranslation(notBlankTag, trans,
		func(ut.Translator) error { return nil },
		func(ut.Translator, validator.FieldError) string { return "this field cannot be blank" },
	); err != nil {
		return nil, nil, fmt.Errorf("translate %s: %w", notBlankTag, err)
	}
	return v, trans, nil
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// embedded lists request structs that are flattened into their parent's
// JSON and must not show up in error paths.
var embedded = map[string]bool{
	"classroomInput": true,
	"examMeta":       true,
	"seatingBody":    true,
	"seatingInput":   true,
	"Header":         true,
	"TimetableMeta":  true,
}

// fieldErrors flattens validation errors into JSON path -> message, e.g.
// "classrooms[0].benches".
func (v *Validator) fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		parts := strings.Split(fe.Namespace(), ".")
		path := make([]string, 0, len(parts))
		for _, p := range parts[1:] {
			if !embedded[p] {
				path = append(path, p)
			}
		}
		out[strings.Join(path, ".")] = fe.Translate(v.trans)
	}
	return out
}
