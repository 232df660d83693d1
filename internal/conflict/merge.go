package conflict

import (
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/todosync/internal/models"
)

// textSeparator разделитель при слиянии текстовых полей
const textSeparator = " & "

var priorityRank = map[string]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// SmartMerge сливает серверное и клиентское значение поля по правилам типа поля:
//   - title, description: "server & client", если оба непустые
//   - priority: больший приоритет, при равенстве серверный
//   - completed: логическое ИЛИ
//   - due_date: более ранняя дата
//   - остальные поля: серверное значение
func SmartMerge(field string, serverValue, clientValue any) any {
	switch field {
	case models.FieldTitle, models.FieldDescription:
		return mergeText(serverValue, clientValue)
	case models.FieldPriority:
		return mergePriority(serverValue, clientValue)
	case models.FieldCompleted:
		return asBool(serverValue) || asBool(clientValue)
	case models.FieldDueDate:
		return mergeDueDate(serverValue, clientValue)
	default:
		return serverValue
	}
}

func mergeText(serverValue, clientValue any) any {
	s, c := asString(serverValue), asString(clientValue)
	switch {
	case s != "" && c != "":
		// совпадающие тексты тоже склеиваются
		return s + textSeparator + c
	case s != "":
		return serverValue
	case c != "":
		return clientValue
	default:
		return serverValue
	}
}

func mergePriority(serverValue, clientValue any) any {
	s := priorityRank[strings.ToLower(asString(serverValue))]
	c := priorityRank[strings.ToLower(asString(clientValue))]
	if s >= c {
		return serverValue
	}
	return clientValue
}

func mergeDueDate(serverValue, clientValue any) any {
	s, sok := asDate(serverValue)
	c, cok := asDate(clientValue)
	switch {
	case sok && cok:
		if c.Before(s) {
			return clientValue
		}
		return serverValue
	case sok:
		return serverValue
	case cok:
		return clientValue
	default:
		return serverValue
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	default:
		return fmt.Sprint(s)
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true") || b == "1"
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

func asDate(v any) (time.Time, bool) {
	s := asString(v)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
