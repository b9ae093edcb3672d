package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("signup_role", validateSignupRole)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func IsSupportedImage(mimeType string) bool {
	return supportedImageTypes[mimeType]
}

func validateImageType(fl validator.FieldLevel) bool {
	return IsSupportedImage(fl.Field().String())
}

// Admin accounts are never self-registered.
func validateSignupRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "traveler", "vendor":
		return true
	}
	return false
}
