package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// contactInput is the raw add-contact form.
type contactInput struct {
	Name     string `flag:"name" validate:"required"`
	Phone    string `flag:"phone" validate:"required"`
	Email    string `flag:"email" validate:"omitempty,email"`
	Category string `flag:"category" validate:"required"`
}

// updateInput holds the replacement values of an update; empty means keep.
type updateInput struct {
	Phone string `flag:"new-phone" validate:"omitempty,max=32"`
	Email string `flag:"new-email" validate:"omitempty,email"`
}

// inputValidator wraps the go-playground validator and reports failures
// using flag names.
type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("flag")
	})
	return &inputValidator{validate: v}
}

// Validate returns nil or an error listing every failed field.
func (v *inputValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, msgForTag(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
