package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRuns_NewestFirst(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := s.WriteRun(ctx, createTestResult(t, name))
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c", runs[0].Scenario)
	assert.Equal(t, "a", runs[2].Scenario)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, int64(3), limited[0].Seq)
	assert.Equal(t, int64(2), limited[1].Seq)
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestReadRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	written, err := s.WriteRun(ctx, createTestResult(t, "users"))
	require.NoError(t, err)

	got, err := s.ReadRun(ctx, written.ID)
	require.NoError(t, err)
	assert.Equal(t, written, got)

	_, err = s.ReadRun(ctx, "missing")
	assert.True(t, errors.Is(err, ErrRunNotFound), "got %v", err)
}

func TestReadCases(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.WriteRun(ctx, createTestResult(t, "users"))
	require.NoError(t, err)

	cases, err := s.ReadCases(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []CaseRecord{
		{Name: "valid", Expect: "pass", Matched: true, Pass: true, Seq: 1},
		{Name: "wrong types", Expect: "pass", Matched: false, Pass: false, Seq: 2},
	}, cases)
}

func TestReadFailures(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.WriteRun(ctx, createTestResult(t, "users"))
	require.NoError(t, err)

	failures, err := s.ReadFailures(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []FailureRecord{
		{Case: "wrong types", Key: "id", Kind: "type_mismatch", Relation: "be of type", Expected: `"number"`, Received: `"string"`, Seq: 1},
		{Case: "wrong types", Key: "name", Kind: "type_mismatch", Relation: "be of type", Expected: `"string"`, Received: `"number"`, Seq: 2},
	}, failures)

	none, err := s.ReadFailures(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
