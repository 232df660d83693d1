package conflict

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/todosync/internal/models"
)

func pendingUpdate(entityID, field string, value any, ts int64) *models.Operation {
	return &models.Operation{
		Kind:       models.OperationUpdate,
		LocalID:    "local-" + entityID,
		EntityID:   entityID,
		FieldName:  field,
		NewValue:   value,
		OldValue:   "old",
		Timestamp:  ts,
		SyncStatus: models.StatusPending,
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		local     []*models.Operation
		server    []FieldChange
		wantCount int
	}{
		{
			name:      "server change after local edit conflicts",
			local:     []*models.Operation{pendingUpdate("1", "title", "client", 100)},
			server:    []FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: 200}},
			wantCount: 1,
		},
		{
			name:      "server change before local edit does not conflict",
			local:     []*models.Operation{pendingUpdate("1", "title", "client", 300)},
			server:    []FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: 200}},
			wantCount: 0,
		},
		{
			name:      "equal timestamps do not conflict",
			local:     []*models.Operation{pendingUpdate("1", "title", "client", 200)},
			server:    []FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: 200}},
			wantCount: 0,
		},
		{
			name:      "same value does not conflict",
			local:     []*models.Operation{pendingUpdate("1", "priority", "HIGH", 100)},
			server:    []FieldChange{{EntityID: "1", FieldName: "priority", Value: "HIGH", Timestamp: 200}},
			wantCount: 0,
		},
		{
			name:      "different field does not conflict",
			local:     []*models.Operation{pendingUpdate("1", "title", "client", 100)},
			server:    []FieldChange{{EntityID: "1", FieldName: "description", Value: "server", Timestamp: 200}},
			wantCount: 0,
		},
		{
			name: "synced local operation does not conflict",
			local: []*models.Operation{func() *models.Operation {
				op := pendingUpdate("1", "title", "client", 100)
				op.SyncStatus = models.StatusSynced
				return op
			}()},
			server:    []FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: 200}},
			wantCount: 0,
		},
		{
			name:      "no local operations",
			server:    []FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: 200}},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.local, tt.server)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestDetect_ConflictFields(t *testing.T) {
	local := []*models.Operation{pendingUpdate("1", "completed", true, 100)}
	server := []FieldChange{{EntityID: "1", FieldName: "completed", Value: false, Timestamp: 150}}

	got := Detect(local, server)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "1", c.TodoID)
	assert.Equal(t, "completed", c.FieldName)
	assert.Equal(t, false, c.ServerValue)
	assert.Equal(t, true, c.ClientNewValue)
	assert.Equal(t, "old", c.ClientOldValue)
	assert.Equal(t, int64(150), c.ServerTimestamp)
	assert.Equal(t, int64(100), c.ClientTimestamp)
	assert.Equal(t, models.SeverityCritical, c.Severity)
}

func TestDetect_UsesLatestLocalEdit(t *testing.T) {
	local := []*models.Operation{
		pendingUpdate("1", "title", "first", 100),
		pendingUpdate("1", "title", "second", 300),
	}
	server := []FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: 200}}

	// Последняя правка (300) новее серверной (200)
	assert.Empty(t, Detect(local, server))
}

func TestDetect_SortedBySeverity(t *testing.T) {
	local := []*models.Operation{
		pendingUpdate("1", "description", "d", 100),
		pendingUpdate("1", "completed", true, 100),
		pendingUpdate("1", "title", "t", 100),
		pendingUpdate("1", "tags", "x", 100),
	}
	server := []FieldChange{
		{EntityID: "1", FieldName: "description", Value: "sd", Timestamp: 200},
		{EntityID: "1", FieldName: "tags", Value: "sx", Timestamp: 200},
		{EntityID: "1", FieldName: "title", Value: "st", Timestamp: 200},
		{EntityID: "1", FieldName: "completed", Value: false, Timestamp: 200},
	}

	got := Detect(local, server)
	require.Len(t, got, 4)
	assert.Equal(t, models.SeverityCritical, got[0].Severity)
	assert.Equal(t, models.SeverityHigh, got[1].Severity)
	assert.Equal(t, models.SeverityMedium, got[2].Severity)
	assert.Equal(t, models.SeverityLow, got[3].Severity)
}

// Конфликт возникает тогда и только тогда, когда T1 > T0 (при разных значениях)
func TestDetect_Property(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		t0 := rnd.Int63n(1000)
		t1 := rnd.Int63n(1000)

		got := Detect(
			[]*models.Operation{pendingUpdate("1", "title", "client", t0)},
			[]FieldChange{{EntityID: "1", FieldName: "title", Value: "server", Timestamp: t1}},
		)
		assert.Equal(t, t1 > t0, len(got) == 1, "t0=%d t1=%d", t0, t1)
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		field string
		want  models.Severity
	}{
		{"completed", models.SeverityCritical},
		{"title", models.SeverityHigh},
		{"due_date", models.SeverityHigh},
		{"description", models.SeverityMedium},
		{"priority", models.SeverityMedium},
		{"whatever", models.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityFor(tt.field))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("a", "a"))
	assert.True(t, Equal(float64(3), 3))
	assert.True(t, Equal(true, "true"))
	assert.False(t, Equal(nil, ""))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal("a", "b"))
}
