package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// dueDateLayouts допустимые форматы срока
var dueDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// messages тексты ошибок по ключу "поле.тег"
var messages = map[string]string{
	"title.notblank":   "title cannot be empty",
	"title.max":        fmt.Sprintf("title must not exceed %d characters", MaxTitleLen),
	"name.notblank":    "list name cannot be empty",
	"name.max":         fmt.Sprintf("list name must not exceed %d characters", MaxListNameLen),
	"content.notblank": "comment content cannot be empty",
	"todo_id.required": "comment must reference a todo",
}

// todoFields обязательные поля todo
type todoFields struct {
	Title string `json:"title" validate:"notblank,max=200"`
}

type listFields struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

type commentFields struct {
	Content string `json:"content" validate:"notblank"`
	TodoID  string `json:"todo_id" validate:"required"`
}

// getValidator возвращает общий экземпляр с тегами notblank и duedate.
// Поля в ошибках называются по json тегу.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
			for _, layout := range dueDateLayouts {
				if _, err := time.Parse(layout, fl.Field().String()); err == nil {
					return true
				}
			}
			return false
		})
	})
	return validate
}

// validateStruct проверяет структуру и сводит первую ошибку к ErrInvalidField
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return fmt.Errorf("%w: %s", ErrInvalidField, msg)
	}
	return fmt.Errorf("%w: %s failed %s", ErrInvalidField, fe.Field(), fe.Tag())
}
