package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2024-01-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func candidate(start, end string) SlotCandidate {
	return SlotCandidate{Start: at(start), End: at(end)}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to SlotStatus
		want     bool
	}{
		{SlotAvailable, SlotBooked, true},
		{SlotAvailable, SlotCancelled, true},
		{SlotBooked, SlotCancelled, true},
		{SlotBooked, SlotAvailable, false},
		{SlotBooked, SlotBooked, false},
		{SlotAvailable, SlotAvailable, false},
		{SlotCancelled, SlotAvailable, false},
		{SlotCancelled, SlotBooked, false},
		{SlotCancelled, SlotCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(at("09:00"), at("09:30"), at("09:20"), at("09:50")))
	assert.True(t, Overlaps(at("09:00"), at("10:00"), at("09:15"), at("09:30")))
	assert.False(t, Overlaps(at("09:00"), at("09:30"), at("09:30"), at("10:00")), "touching intervals do not overlap")
	assert.False(t, Overlaps(at("10:00"), at("10:30"), at("09:00"), at("09:30")))
}

func TestPlanBatch_IntervalEqualsDuration(t *testing.T) {
	accepted, skipped := PlanBatch(nil, []SlotCandidate{
		candidate("09:00", "09:30"),
		candidate("09:30", "10:00"),
	})

	assert.Len(t, accepted, 2)
	assert.Empty(t, skipped)
}

func TestPlanBatch_IntervalShorterThanDuration(t *testing.T) {
	accepted, skipped := PlanBatch(nil, []SlotCandidate{
		candidate("09:00", "09:30"),
		candidate("09:20", "09:50"),
	})

	require.Len(t, accepted, 1)
	assert.Equal(t, at("09:00"), accepted[0].Start)

	require.Len(t, skipped, 1)
	assert.Equal(t, at("09:20"), skipped[0].Candidate.Start)
	assert.Zero(t, skipped[0].ConflictSlotID)
	assert.Equal(t, at("09:00"), skipped[0].ConflictStart)
	assert.ErrorIs(t, skipped[0].Err, ErrConflict)
}

func TestPlanBatch_AgainstExisting(t *testing.T) {
	existing := []*Slot{
		{ID: 1, Start: at("09:00"), End: at("09:30"), Status: SlotBooked},
		{ID: 2, Start: at("10:00"), End: at("10:30"), Status: SlotCancelled},
		{ID: 3, Start: at("11:00"), End: at("11:30"), Status: SlotAvailable},
	}

	accepted, skipped := PlanBatch(existing, []SlotCandidate{
		candidate("11:15", "11:45"),
		candidate("09:30", "10:00"),
		candidate("10:00", "10:30"),
		candidate("09:15", "09:45"),
	})

	require.Len(t, accepted, 2)
	assert.Equal(t, at("09:30"), accepted[0].Start)
	assert.Equal(t, at("10:00"), accepted[1].Start, "cancelled slots free their time")

	require.Len(t, skipped, 2)
	assert.Equal(t, at("09:15"), skipped[0].Candidate.Start)
	assert.Equal(t, int64(1), skipped[0].ConflictSlotID)
	assert.Equal(t, at("11:15"), skipped[1].Candidate.Start)
	assert.Equal(t, int64(3), skipped[1].ConflictSlotID)
}

func TestPlanBatch_IdenticalRegeneration(t *testing.T) {
	candidates := []SlotCandidate{
		candidate("09:00", "09:30"),
		candidate("09:30", "10:00"),
	}
	existing := []*Slot{
		{ID: 10, Start: at("09:00"), End: at("09:30"), Status: SlotAvailable},
		{ID: 11, Start: at("09:30"), End: at("10:00"), Status: SlotAvailable},
	}

	accepted, skipped := PlanBatch(existing, candidates)

	assert.Empty(t, accepted)
	require.Len(t, skipped, 2)
	assert.Equal(t, int64(10), skipped[0].ConflictSlotID)
	assert.Equal(t, int64(11), skipped[1].ConflictSlotID)
}

func TestTransition_Validate(t *testing.T) {
	customer := &Customer{Name: "Ann", Email: "ann@example.com"}

	assert.NoError(t, Transition{From: SlotAvailable, To: SlotBooked, Customer: customer}.Validate())
	assert.NoError(t, Transition{From: SlotBooked, To: SlotCancelled}.Validate())

	err := Transition{From: SlotCancelled, To: SlotAvailable}.Validate()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, ErrConflict)

	err = Transition{From: SlotAvailable, To: SlotBooked}.Validate()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTransition_Apply(t *testing.T) {
	now := at("08:00")
	slot := Slot{ID: 1, Start: at("09:00"), End: at("09:30"), Status: SlotAvailable}

	booked := Transition{From: SlotAvailable, To: SlotBooked, At: now,
		Customer: &Customer{Name: "Ann", Email: "ann@example.com"}}.Apply(slot)

	assert.Equal(t, SlotBooked, booked.Status)
	require.NotNil(t, booked.Customer)
	assert.Equal(t, "Ann", booked.Customer.Name)
	require.NotNil(t, booked.BookedAt)
	assert.Equal(t, now, *booked.BookedAt)
	assert.Equal(t, SlotAvailable, slot.Status, "original is untouched")

	cancelled := Transition{From: SlotBooked, To: SlotCancelled, At: now}.Apply(booked)
	assert.Equal(t, SlotCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.NotNil(t, cancelled.Customer, "customer stays for audit")
}

func TestParseSlotStatus(t *testing.T) {
	st, err := ParseSlotStatus("booked")
	require.NoError(t, err)
	assert.Equal(t, SlotBooked, st)

	_, err = ParseSlotStatus("free")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSlotFilter_Matches(t *testing.T) {
	serviceID := int64(5)
	status := SlotAvailable
	from := at("09:00")
	to := at("10:00")

	f := SlotFilter{ServiceID: &serviceID, Status: &status, From: &from, To: &to}

	assert.True(t, f.Matches(&Slot{ServiceID: 5, Status: SlotAvailable, Start: at("09:00")}))
	assert.False(t, f.Matches(&Slot{ServiceID: 6, Status: SlotAvailable, Start: at("09:00")}))
	assert.False(t, f.Matches(&Slot{ServiceID: 5, Status: SlotBooked, Start: at("09:00")}))
	assert.False(t, f.Matches(&Slot{ServiceID: 5, Status: SlotAvailable, Start: at("10:00")}))
	assert.True(t, SlotFilter{}.Matches(&Slot{}))
}

func TestTimeRange_Contains(t *testing.T) {
	r := TimeRange{From: at("09:00")}
	assert.True(t, r.Contains(at("23:00")))
	assert.False(t, r.Contains(at("08:59")))

	r.To = at("10:00")
	assert.False(t, r.Contains(at("10:00")))
	assert.True(t, r.Contains(at("09:59")))
}
