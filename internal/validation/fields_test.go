package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "valid", title: "Buy milk"},
		{name: "unicode at limit", title: strings.Repeat("я", MaxTitleLen)},
		{name: "empty", title: "", wantErr: true},
		{name: "spaces only", title: "   ", wantErr: true},
		{name: "too long", title: strings.Repeat("a", MaxTitleLen+1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidField)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		want    any
		name    string
		field   string
		raw     string
		wantErr error
	}{
		{name: "title", field: models.FieldTitle, raw: "New", want: "New"},
		{name: "empty title", field: models.FieldTitle, raw: "", wantErr: ErrInvalidField},
		{name: "description may be empty", field: models.FieldDescription, raw: "", want: ""},
		{name: "priority normalized", field: models.FieldPriority, raw: " HIGH ", want: models.PriorityHigh},
		{name: "bad priority", field: models.FieldPriority, raw: "urgent", wantErr: ErrInvalidField},
		{name: "completed", field: models.FieldCompleted, raw: "true", want: true},
		{name: "completed short", field: models.FieldCompleted, raw: "0", want: false},
		{name: "bad completed", field: models.FieldCompleted, raw: "yes", wantErr: ErrInvalidField},
		{name: "due date", field: models.FieldDueDate, raw: "2024-05-01", want: "2024-05-01"},
		{name: "due date cleared", field: models.FieldDueDate, raw: "", want: nil},
		{name: "bad due date", field: models.FieldDueDate, raw: "01/05/2024", wantErr: ErrInvalidField},
		{name: "unknown", field: "color", raw: "red", wantErr: ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseField(tt.field, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		data       map[string]any
		name       string
		collection string
		wantMsg    string
	}{
		{name: "todo", collection: models.CollectionTodos, data: map[string]any{"title": "x"}},
		{name: "todo without title", collection: models.CollectionTodos, data: map[string]any{}, wantMsg: "title cannot be empty"},
		{name: "todo title not a string", collection: models.CollectionTodos, data: map[string]any{"title": 5}, wantMsg: "title cannot be empty"},
		{name: "list", collection: models.CollectionSharedLists, data: map[string]any{"name": "groceries"}},
		{name: "list name blank", collection: models.CollectionSharedLists, data: map[string]any{"name": " "}, wantMsg: "list name cannot be empty"},
		{
			name: "list name too long", collection: models.CollectionSharedLists,
			data:    map[string]any{"name": strings.Repeat("a", MaxListNameLen+1)},
			wantMsg: "list name must not exceed 100 characters",
		},
		{name: "comment", collection: models.CollectionComments, data: map[string]any{"content": "hi", "todo_id": "42"}},
		{name: "comment without todo", collection: models.CollectionComments, data: map[string]any{"content": "hi"}, wantMsg: "comment must reference a todo"},
		{name: "comment without content", collection: models.CollectionComments, data: map[string]any{"todo_id": "42"}, wantMsg: "comment content cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.collection, tt.data)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidField)
			assert.ErrorContains(t, err, tt.wantMsg)
		})
	}

	err := ValidateRecord("tags", map[string]any{})
	assert.ErrorContains(t, err, "unknown collection")
	assert.NotErrorIs(t, err, ErrInvalidField)
}

func TestValidateTitle_Messages(t *testing.T) {
	assert.EqualError(t, ValidateTitle(""), "invalid field value: title cannot be empty")
	assert.EqualError(t, ValidateTitle(strings.Repeat("a", MaxTitleLen+1)), "invalid field value: title must not exceed 200 characters")
}
