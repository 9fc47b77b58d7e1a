/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/datazip-inc/bqoutput/types"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	fileFormatTag     = "file_format"
	qualifiedTableTag = "qualified_table"
)

// use a single instance, it caches struct info
var (
	validate *validator.Validate
	trans    ut.Translator
)

// Validate checks the `validate` struct tags of structure and joins the English
// translations of every failure into one error.
func Validate[T any](structure T) error {
	err := validate.Struct(structure)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, e.Translate(trans))
	}
	return errors.New(strings.Join(messages, "; "))
}

func isFileFormat(fl validator.FieldLevel) bool {
	return types.FileFormat(fl.Field().String()).IsValid()
}

func isQualifiedTable(fl validator.FieldLevel) bool {
	_, err := types.ParseQualifiedTableName(fl.Field().String())
	return err == nil
}

func registerTranslation(tag, text string, params ...string) {
	err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, text, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		translated, _ := ut.T(tag, append([]string{fe.Field()}, params...)...)
		return translated
	})
	if err != nil {
		panic(err)
	}
}

func init() {
	english := en.New()
	trans, _ = ut.New(english, english).GetTranslator("en")

	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}

	_ = validate.RegisterValidation(fileFormatTag, isFileFormat)
	_ = validate.RegisterValidation(qualifiedTableTag, isQualifiedTable)
	registerTranslation(fileFormatTag, "{0} must be one of {1}", strings.Join(types.FileFormatNames(), ", "))
	registerTranslation(qualifiedTableTag, "{0} must have the form projectId:datasetId.tableId")
}
