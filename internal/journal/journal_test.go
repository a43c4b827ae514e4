package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jask/panesync/internal/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openMemory(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestAppendAssignsSequencePerSession(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	j := openMemory(t)

	a, b := NewSession(), NewSession()
	require.NotEqual(t, a, b)

	e1, err := j.Append(ctx, a, state.SetLeftChildrenNumber(1))
	require.NoError(t, err)
	require.EqualValues(t, 1, e1.Seq)
	require.Equal(t, state.SliceChildren, e1.Slice)

	e2, err := j.Append(ctx, a, state.SetHeaderString("Modified by left container"))
	require.NoError(t, err)
	require.EqualValues(t, 2, e2.Seq)
	require.Equal(t, `"Modified by left container"`, e2.Payload)

	other, err := j.Append(ctx, b, state.SetHeaderNumber(-1))
	require.NoError(t, err)
	require.EqualValues(t, 1, other.Seq)

	n, err := j.Count(ctx, a)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)
	session := NewSession()
	for i := 1; i <= 5; i++ {
		_, err := j.Append(ctx, session, state.SetRightChildrenNumber(i))
		require.NoError(t, err)
	}

	got, err := j.Recent(ctx, session, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.EqualValues(t, 5, got[0].Seq)
	require.Equal(t, "5", got[0].Payload)
	require.EqualValues(t, 3, got[2].Seq)
	require.Equal(t, string(state.ActionSetRightChildrenNumber), got[0].Action)
	require.False(t, got[0].At.IsZero())

	none, err := j.Recent(ctx, session, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestRecorderFollowsStore(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)
	session := NewSession()

	store := state.NewStore()
	var errs []error
	store.Subscribe(j.Recorder(ctx, session, func(err error) { errs = append(errs, err) }))

	require.NoError(t, store.Dispatch(state.SetLeftChildrenNumber(3)))
	require.NoError(t, store.Dispatch(state.SetRightChildrenNumber(7)))
	require.Error(t, store.Dispatch(state.Action{Type: "bogus"}))
	require.Empty(t, errs)

	got, err := j.Recent(ctx, session, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "#2 children/setRightChildrenNumber(7)", got[0].String())
}

func TestRecorderReportsFailuresWithoutBlockingDispatch(t *testing.T) {
	j, err := Open(MemoryPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	store := state.NewStore()
	var errs []error
	store.Subscribe(j.Recorder(context.Background(), NewSession(), func(err error) { errs = append(errs, err) }))

	require.NoError(t, store.Dispatch(state.SetHeaderNumber(1)))
	require.Len(t, errs, 1)
	require.Equal(t, 1, store.State().Header.HeaderNumber)
}

func TestOpenFileJournalIsReopenable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	require.NoError(t, err)
	session := NewSession()
	_, err = j.Append(ctx, session, state.SetChildrenString("x"))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j, err = Open(path)
	require.NoError(t, err)
	defer j.Close()
	n, err := j.Count(ctx, session)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
