package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"student_attendance/models"
)

var (
	translator     ut.Translator
	validationOnce sync.Once

	// custom validation tags & texts
	notBlankTag          = "notblank"
	notBlankText         = "{0} cannot be blank"
	attendanceStatusTag  = "attendance_status"
	attendanceStatusText = "{0} must be present or absent"
)

// InitValidation hooks the custom tags and English messages into gin's validator engine.
func InitValidation() {
	validationOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// Use JSON tag names for errors instead of Go struct names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
		_ = validate.RegisterValidation(attendanceStatusTag, attendanceStatusValidation)
		registerCustomTranslation(validate, notBlankTag, notBlankText)
		registerCustomTranslation(validate, attendanceStatusTag, attendanceStatusText)
	})
}

func registerCustomTranslation(validate *validator.Validate, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func attendanceStatusValidation(fl validator.FieldLevel) bool {
	_, err := models.ParseAttendanceStatus(fl.Field().String())
	return err == nil
}

// validationMessage turns a binding error into one user-facing sentence.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		if translator != nil {
			return errs[0].Translate(translator)
		}
		return errs[0].Field() + " is invalid"
	}
	return "Invalid request body"
}
