package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityStatus_CanTransitionTo(t *testing.T) {
	for _, from := range EntityStatuses {
		for _, to := range EntityStatuses {
			want := from == StatusPending && (to == StatusActive || to == StatusRejected)
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, EntityStatus("archived").CanTransitionTo(StatusActive))
}

func TestParseEntityKind(t *testing.T) {
	tests := []struct {
		input string
		want  EntityKind
		ok    bool
	}{
		{"business_hubs", KindBusinessHub, true},
		{"stations", KindLoadingStation, true},
		{"rider", KindRider, true},
		{"merchants", KindMerchant, true},
		{"shareholders", KindShareholder, true},
		{"drivers", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := ParseEntityKind(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestEntityKind_NewRecord(t *testing.T) {
	for _, kind := range EntityKinds {
		record := kind.NewRecord()
		require.NotNil(t, record, kind)
		assert.Equal(t, kind, record.Kind())
	}
	assert.Nil(t, EntityKind("unknown").NewRecord())
}

func TestSnapshot_IncludesRejectionReason(t *testing.T) {
	reason := "incomplete documents"
	rider := &Rider{Name: "Karim"}
	rider.Status = StatusRejected
	rider.RejectionReason = &reason

	snap := rider.Snapshot()
	assert.Equal(t, "rejected", snap["status"])
	assert.Equal(t, reason, snap["rejection_reason"])
	assert.Equal(t, "Karim", snap["name"])
}

func TestJSONMap_ScanValue(t *testing.T) {
	original := JSONMap{"status": "active", "balance": 120.5}
	v, err := original.Value()
	require.NoError(t, err)

	var fromString JSONMap
	require.NoError(t, fromString.Scan(v))
	assert.Equal(t, "active", fromString["status"])
	assert.Equal(t, 120.5, fromString["balance"])

	var fromBytes JSONMap
	require.NoError(t, fromBytes.Scan([]byte(`{"x":1}`)))
	assert.Equal(t, float64(1), fromBytes["x"])

	assert.Error(t, fromBytes.Scan(42))
}
