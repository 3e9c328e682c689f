// Package validator adapts go-playground/validator to fiber's StructValidator
// and turns the first failed rule into a readable message.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"careerlink/internal/domain/job"
	"careerlink/internal/domain/skill"
	"careerlink/internal/domain/student"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// Error is the first rule a request violated.
type Error struct {
	Field   string
	Tag     string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("skill", func(fl validator.FieldLevel) bool {
		return skill.IsValid(fl.Field().String())
	})
	_ = v.RegisterValidation("degree", func(fl validator.FieldLevel) bool {
		return student.Degree(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("job_type", func(fl validator.FieldLevel) bool {
		return job.Type(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Validate implements fiber.StructValidator.
func (v *Validator) Validate(out any) error {
	err := v.validate.Struct(out)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &Error{Field: fe.Field(), Tag: fe.Tag(), Message: message(fe)}
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "email":
		return f + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	case "skill":
		return fmt.Sprintf("%s is not a supported skill", f)
	case "degree":
		return f + " must be BSC or MSC"
	case "job_type":
		return f + " must be Full-time or Part-time"
	case "uuid", "uuid4":
		return f + " must be a valid id"
	default:
		return f + " is invalid"
	}
}
