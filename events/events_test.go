package events

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libbond-go/bond"
)

func makeEvent(t Type, amount uint64) Event {
	var id bond.SeriesID
	id[0] = 0x01
	var actor bond.Address
	actor[0] = 0xAA
	return Event{
		Time:   time.Unix(1700000000, 0).UTC(),
		Type:   t,
		Series: id,
		Actor:  actor,
		Amount: amount,
	}
}

func TestMemLogAppend(t *testing.T) {
	log := NewMemLog()

	require.NoError(t, Emit(log, makeEvent(TypeDistribution, 100)))
	require.NoError(t, Emit(log, makeEvent(TypeClaim, 10)))
	require.NoError(t, Emit(log, makeEvent(TypeDistribution, 200)))

	evs, err := log.Events()
	require.NoError(t, err)
	require.Len(t, evs, 3)

	// Sequence numbers strictly increase in append order.
	for i, ev := range evs {
		assert.Equal(t, uint64(i+1), ev.Seq)
	}
	assert.Equal(t, TypeClaim, evs[1].Type)
}

func TestMemLogAppendNil(t *testing.T) {
	assert.ErrorIs(t, NewMemLog().Append(nil), ErrNilEvent)
}

func TestEmitNilLog(t *testing.T) {
	// Components run without an audit log; Emit must tolerate that.
	assert.NoError(t, Emit(nil, makeEvent(TypeDistribution, 1)))
}

func TestMemLogEventsCopy(t *testing.T) {
	log := NewMemLog()
	require.NoError(t, Emit(log, makeEvent(TypeDistribution, 100)))

	evs, err := log.Events()
	require.NoError(t, err)
	evs[0].Amount = 999

	again, err := log.Events()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), again[0].Amount)
}

func TestOfType(t *testing.T) {
	log := NewMemLog()
	require.NoError(t, Emit(log, makeEvent(TypeDistribution, 1)))
	require.NoError(t, Emit(log, makeEvent(TypeClaim, 2)))
	require.NoError(t, Emit(log, makeEvent(TypeDistribution, 3)))

	evs, err := log.Events()
	require.NoError(t, err)

	dists := OfType(evs, TypeDistribution)
	require.Len(t, dists, 2)
	assert.Equal(t, uint64(1), dists[0].Amount)
	assert.Equal(t, uint64(3), dists[1].Amount)

	assert.Empty(t, OfType(evs, TypeDefaulted))
}

func TestBoltLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	log, err := OpenBoltLog(path)
	require.NoError(t, err)

	want := []Event{
		makeEvent(TypeDistribution, 100),
		makeEvent(TypeClaim, 10),
		makeEvent(TypeRouteFailed, 0),
	}
	want[2].Reason = "series inactive"
	for i := range want {
		require.NoError(t, log.Append(&want[i]))
	}
	require.NoError(t, log.Close())

	// Reopen and verify order, sequence, and payload survive.
	log, err = OpenBoltLog(path)
	require.NoError(t, err)
	defer log.Close()

	evs, err := log.Events()
	require.NoError(t, err)
	require.Len(t, evs, 3)
	for i, ev := range evs {
		assert.Equal(t, uint64(i+1), ev.Seq)
		assert.Equal(t, want[i].Type, ev.Type)
		assert.Equal(t, want[i].Amount, ev.Amount)
		assert.Equal(t, want[i].Series, ev.Series)
	}
	assert.Equal(t, "series inactive", evs[2].Reason)

	// Appends after reopen continue the sequence.
	next := makeEvent(TypeMatured, 0)
	require.NoError(t, log.Append(&next))
	assert.Equal(t, uint64(4), next.Seq)
}

func TestBoltLogCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")

	log, err := OpenBoltLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Close())
}
