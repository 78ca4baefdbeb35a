package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseConfirmed(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  bool
	}{
		{name: "bool true", input: true, want: true},
		{name: "bool false", input: false, want: false},
		{name: "upper TRUE", input: "TRUE", want: true},
		{name: "lower true", input: "true", want: true},
		{name: "padded TRUE", input: "  TRUE ", want: true},
		{name: "FALSE", input: "FALSE", want: false},
		{name: "garbage string", input: "yes", want: false},
		{name: "nil", input: nil, want: false},
		{name: "number", input: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseConfirmed(tt.input))
		})
	}
}

func TestHistoryEventIsEmpty(t *testing.T) {
	assert.True(t, HistoryEvent{}.IsEmpty())
	assert.False(t, HistoryEvent{Status: "x"}.IsEmpty())
	assert.False(t, HistoryEvent{Timestamp: time.Now()}.IsEmpty())
}

func TestHasPhotos(t *testing.T) {
	rec := BaggageRecord{BaggagePhoto: "short"}
	assert.False(t, rec.HasBaggagePhoto())
	assert.False(t, rec.HasPassengerPhoto())

	rec.BaggagePhoto = "data:image/jpeg;base64,AAAA"
	rec.PassengerPhoto = "data:image/png;base64,BBBB"
	assert.True(t, rec.HasBaggagePhoto())
	assert.True(t, rec.HasPassengerPhoto())
}

func TestProjectReport(t *testing.T) {
	now := time.Now()
	rec := BaggageRecord{
		PIR:           "JEDSV12345",
		PassengerName: "Sara",
		Flight:        "SV123",
		Status:        StatusUrgent,
		LastUpdate:    now,
	}

	rep := ProjectReport(rec)
	assert.Equal(t, "JEDSV12345", rep.ID)
	assert.Equal(t, "JEDSV12345", rep.PIR)
	assert.Equal(t, "Sara", rep.PassengerName)
	assert.Equal(t, "SV123", rep.Flight)
	assert.Equal(t, StatusUrgent, rep.Status)
	assert.Equal(t, now, rep.LastUpdate)
}
