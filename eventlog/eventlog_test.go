package eventlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/paysplit-go/splitter"
)

func makeAccount(seed byte) splitter.AccountID {
	var id splitter.AccountID
	for i := range id {
		id[i] = seed
	}
	return id
}

func TestMemoryLog_AppendOrder(t *testing.T) {
	log := NewMemoryLog()

	require.NoError(t, log.Deposited(makeAccount(0x01), 100))
	require.NoError(t, log.PayoutCompleted([]splitter.PayoutRecord{
		{Payee: makeAccount(0x02), Amount: 50},
		{Payee: makeAccount(0x03), Amount: 50},
	}))
	require.NoError(t, log.Deposited(makeAccount(0x04), 7))

	events := log.Events()
	require.Len(t, events, 3)

	assert.Equal(t, KindDeposit, events[0].Kind)
	assert.Equal(t, makeAccount(0x01), events[0].From)
	assert.Equal(t, uint64(100), events[0].Amount)

	assert.Equal(t, KindPayout, events[1].Kind)
	require.Len(t, events[1].Records, 2)
	assert.Equal(t, uint64(50), events[1].Records[0].Amount)

	assert.Equal(t, KindDeposit, events[2].Kind)

	// Sequence numbers are strictly increasing.
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Seq, events[i-1].Seq)
	}
}

func TestMemoryLog_CopiesRecords(t *testing.T) {
	log := NewMemoryLog()
	records := []splitter.PayoutRecord{{Payee: makeAccount(0x01), Amount: 10}}
	require.NoError(t, log.PayoutCompleted(records))

	// Caller mutations after emission must not reach the log.
	records[0].Amount = 999
	events := log.Events()
	require.Len(t, events, 1)
	assert.Equal(t, uint64(10), events[0].Records[0].Amount)
}

func TestBoltLog_RoundTrip(t *testing.T) {
	log, err := OpenBoltLog(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.Deposited(makeAccount(0xAA), 121))
	require.NoError(t, log.PayoutCompleted([]splitter.PayoutRecord{
		{Payee: makeAccount(0x01), Amount: 4},
		{Payee: makeAccount(0x02), Amount: 3},
		{Payee: makeAccount(0x03), Amount: 3},
	}))

	events, err := log.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, KindDeposit, events[0].Kind)
	assert.Equal(t, makeAccount(0xAA), events[0].From)
	assert.Equal(t, uint64(121), events[0].Amount)
	assert.Equal(t, uint64(1), events[0].Seq)

	assert.Equal(t, KindPayout, events[1].Kind)
	assert.Equal(t, uint64(2), events[1].Seq)
	require.Len(t, events[1].Records, 3)
	assert.Equal(t, makeAccount(0x01), events[1].Records[0].Payee)
	assert.Equal(t, uint64(4), events[1].Records[0].Amount)
	assert.False(t, events[1].Time.IsZero())
}

func TestBoltLog_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	log, err := OpenBoltLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Deposited(makeAccount(0x01), 1))
	require.NoError(t, log.Close())

	reopened, err := OpenBoltLog(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.Deposited(makeAccount(0x02), 2))

	events, err := reopened.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].Seq)
	assert.Equal(t, uint64(2), events[1].Seq)
}

func TestBoltLog_AsEngineSink(t *testing.T) {
	// The engine reports a completed run straight into the persistent log.
	log, err := OpenBoltLog(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer log.Close()

	auth := makeAccount(0xEE)
	engine := splitter.NewEngine(
		splitter.NewRegistry([]splitter.AccountID{makeAccount(1), makeAccount(2)}, auth),
		&fixedLedger{balance: 9},
		log,
	)

	records, err := engine.TriggerPayout(auth)
	require.NoError(t, err)

	events, err := log.Events()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, KindPayout, events[0].Kind)
	assert.Equal(t, records, events[0].Records)
}

// fixedLedger accepts every transfer against a fixed starting balance.
type fixedLedger struct {
	balance uint64
}

func (l *fixedLedger) Balance() (uint64, error) { return l.balance, nil }

func (l *fixedLedger) Transfer(splitter.AccountID, uint64) error { return nil }
