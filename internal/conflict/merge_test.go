package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmartMerge(t *testing.T) {
	tests := []struct {
		server any
		client any
		want   any
		name   string
		field  string
	}{
		// text
		{name: "title both present", field: "title", server: "Buy milk", client: "Buy bread", want: "Buy milk & Buy bread"},
		{name: "title only server", field: "title", server: "Buy milk", client: "", want: "Buy milk"},
		{name: "title only client", field: "title", server: nil, client: "Buy bread", want: "Buy bread"},
		{name: "title identical still joined", field: "title", server: "same", client: "same", want: "same & same"},
		{name: "description both present", field: "description", server: "a", client: "b", want: "a & b"},

		// priority
		{name: "priority client higher", field: "priority", server: "LOW", client: "HIGH", want: "HIGH"},
		{name: "priority server higher", field: "priority", server: "HIGH", client: "MEDIUM", want: "HIGH"},
		{name: "priority tie keeps server", field: "priority", server: "MEDIUM", client: "MEDIUM", want: "MEDIUM"},
		{name: "priority unknown server", field: "priority", server: "URGENT", client: "LOW", want: "LOW"},

		// completed
		{name: "completed or true", field: "completed", server: false, client: true, want: true},
		{name: "completed both false", field: "completed", server: false, client: false, want: false},
		{name: "completed string", field: "completed", server: "true", client: false, want: true},

		// due_date
		{name: "due date client earlier", field: "due_date", server: "2024-06-10", client: "2024-06-01", want: "2024-06-01"},
		{name: "due date server earlier", field: "due_date", server: "2024-06-01T10:00:00Z", client: "2024-06-10T10:00:00Z", want: "2024-06-01T10:00:00Z"},
		{name: "due date only client", field: "due_date", server: nil, client: "2024-06-01", want: "2024-06-01"},
		{name: "due date only server", field: "due_date", server: "2024-06-01", client: "", want: "2024-06-01"},
		{name: "due date unparsable client", field: "due_date", server: "2024-06-10", client: "soon", want: "2024-06-10"},

		// default
		{name: "other field keeps server", field: "list_id", server: float64(3), client: float64(4), want: float64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SmartMerge(tt.field, tt.server, tt.client))
		})
	}
}
