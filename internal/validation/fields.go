package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/todosync/internal/models"
)

const (
	// MaxTitleLen максимальная длина заголовка todo
	MaxTitleLen = 200
	// MaxListNameLen максимальная длина имени общего списка
	MaxListNameLen = 100
)

var (
	ErrInvalidField = errors.New("invalid field value")
	ErrUnknownField = errors.New("unknown field")
)

// ValidateTitle проверяет заголовок: 1-200 символов
func ValidateTitle(title string) error {
	return validateStruct(todoFields{Title: title})
}

// NormalizePriority приводит приоритет к нижнему регистру и проверяет его
func NormalizePriority(priority string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(priority))
	if err := getValidator().Var(p, "required,oneof=high medium low"); err != nil {
		return "", fmt.Errorf("%w: priority must be one of high, medium, low, got %q", ErrInvalidField, priority)
	}
	return p, nil
}

// NormalizeDueDate проверяет срок. Пустая строка снимает срок.
func NormalizeDueDate(due string) (string, error) {
	due = strings.TrimSpace(due)
	if err := getValidator().Var(due, "omitempty,duedate"); err != nil {
		return "", fmt.Errorf("%w: due date must be YYYY-MM-DD, got %q", ErrInvalidField, due)
	}
	return due, nil
}

// ParseField превращает строку из командной строки в типизированное
// значение поля todo и проверяет его
func ParseField(field, raw string) (any, error) {
	switch field {
	case models.FieldTitle:
		if err := ValidateTitle(raw); err != nil {
			return nil, err
		}
		return raw, nil
	case models.FieldDescription:
		return raw, nil
	case models.FieldPriority:
		return NormalizePriority(raw)
	case models.FieldCompleted:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: completed must be true or false, got %q", ErrInvalidField, raw)
		}
		return b, nil
	case models.FieldDueDate:
		due, err := NormalizeDueDate(raw)
		if err != nil {
			return nil, err
		}
		if due == "" {
			return nil, nil
		}
		return due, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// ValidateRecord проверяет данные записи коллекции перед сохранением
func ValidateRecord(collection string, data map[string]any) error {
	str := func(key string) string {
		v, _ := data[key].(string)
		return v
	}

	switch collection {
	case models.CollectionTodos:
		return validateStruct(todoFields{Title: str(models.FieldTitle)})
	case models.CollectionSharedLists:
		return validateStruct(listFields{Name: str("name")})
	case models.CollectionComments:
		return validateStruct(commentFields{Content: str("content"), TodoID: str("todo_id")})
	}
	return fmt.Errorf("unknown collection %q", collection)
}
