// Package inputval validates decoded form and JSON input against
// `validate:"..."` struct tags and turns failures into user-facing messages.
//
// Field messages use the `label` tag ("Subject name is required."). A
// `required_msg` tag replaces the message for a missing value only. Result
// keys come from the `json` tag so the same map can be returned by JSON
// endpoints and looked up by form templates.
package inputval

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
)

const notBlankTag = "notblank"

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

// messages overrides the library's default English text for the tags the
// app's forms use. {0} is the field label, {1} the tag parameter.
var messages = map[string]string{
	"required":  "{0} is required.",
	notBlankTag: "{0} is required.",
	"max":       "{0} must be at most {1} characters.",
	"min":       "{0} must be at least {1} characters.",
	"email":     "A valid email address is required.",
	"oneof":     "{0} must be one of: {1}.",
}

func setup() {
	validate = validator.New()

	eng := en.New()
	uni := ut.New(eng, eng)
	translator, _ = uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		zap.L().Warn("inputval: default translations not registered", zap.Error(err))
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if l := fld.Tag.Get("label"); l != "" {
			return l
		}
		return fld.Name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})

	for tag, msg := range messages {
		tag, msg := tag, msg
		err := validate.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, msg, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, err := t.T(fe.Tag(), fe.Field(), fe.Param())
				if err != nil {
					return fe.Field() + " is invalid."
				}
				return s
			})
		if err != nil {
			zap.L().Warn("inputval: translation not registered", zap.String("tag", tag), zap.Error(err))
		}
	}
}

// FieldError is one failed field.
type FieldError struct {
	Field   string // json key
	Message string
}

// Result holds validation failures in struct field order. Fields maps each
// failing key to its first message.
type Result struct {
	Errors []FieldError
	Fields map[string]string
}

// HasErrors reports whether any field failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for key, or "".
func (r *Result) Field(key string) string {
	return r.Fields[key]
}

// Add records a failure for key. Only the first message per key is kept.
func (r *Result) Add(key, msg string) {
	if r.Fields == nil {
		r.Fields = map[string]string{}
	}
	if _, exists := r.Fields[key]; exists {
		return
	}
	r.Fields[key] = msg
	r.Errors = append(r.Errors, FieldError{Field: key, Message: msg})
}

// Validate checks v (a struct or pointer to struct) against its tags.
func Validate(v any) Result {
	once.Do(setup)

	var res Result
	err := validate.Struct(v)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("_", "The submitted data could not be read.")
		return res
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for _, fe := range verrs {
		msg := fe.Translate(translator)
		if fe.Tag() == "required" || fe.Tag() == notBlankTag {
			if m := fieldTag(t, fe.StructField(), "required_msg"); m != "" {
				msg = m
			}
		}
		res.Add(jsonKey(t, fe.StructField()), msg)
	}
	return res
}

// OneOf records a failure on key unless value is in allowed. Matching is
// exact. It is a no-op when key already failed.
func (r *Result) OneOf(key, label, value string, allowed []string) {
	if _, failed := r.Fields[key]; failed {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	r.Add(key, label+" must be one of the available options.")
}

func jsonKey(t reflect.Type, field string) string {
	if name := strings.SplitN(fieldTag(t, field, "json"), ",", 2)[0]; name != "" && name != "-" {
		return name
	}
	return strings.ToLower(field)
}

func fieldTag(t reflect.Type, field, key string) string {
	if t.Kind() != reflect.Struct {
		return ""
	}
	sf, ok := t.FieldByName(field)
	if !ok {
		return ""
	}
	return sf.Tag.Get(key)
}
