package conflict

import "github.com/iudanet/todosync/internal/models"

// fieldSeverity важность конфликта по имени поля
var fieldSeverity = map[string]models.Severity{
	models.FieldCompleted:   models.SeverityCritical,
	models.FieldTitle:       models.SeverityHigh,
	models.FieldDueDate:     models.SeverityHigh,
	models.FieldDescription: models.SeverityMedium,
	models.FieldPriority:    models.SeverityMedium,
}

// SeverityFor возвращает важность конфликта для поля. Неизвестные поля - low.
func SeverityFor(field string) models.Severity {
	if s, ok := fieldSeverity[field]; ok {
		return s
	}
	return models.SeverityLow
}
