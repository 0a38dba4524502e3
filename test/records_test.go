package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repforge/repforge/internal/achievements"
	"github.com/repforge/repforge/internal/records"
	"github.com/repforge/repforge/internal/sessions"
)

func (s *IntegrationTestSuite) TestPersonalRecords() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token, _ := s.registerAndLogin(ctx, t)
	exercise := s.addExercise(ctx, token)

	respBytes := s.doRequest(ctx, t, "POST", "/sessions", token, map[string]string{
		"date": day(0),
	}, http.StatusCreated)
	var session sessions.Session
	require.NoError(t, json.Unmarshal(respBytes, &session))

	checkReq := func(weight float64, reps int) map[string]any {
		return map[string]any{
			"exerciseId": exercise.ID,
			"weight":     weight,
			"reps":       reps,
			"sessionId":  session.ID,
			"date":       session.Date,
		}
	}

	// first ever set: all three record dimensions are new, first PR unlocks
	respBytes = s.doRequest(ctx, t, "POST", "/records/check", token, checkReq(100, 5), http.StatusOK)
	var checkResult records.CheckResult
	require.NoError(t, json.Unmarshal(respBytes, &checkResult))
	require.Len(t, checkResult.NewRecords, 3)
	assert.True(t, checkResult.FirstPRUnlocked)

	byType := make(map[records.RecordType]records.NewRecord)
	for _, newRecord := range checkResult.NewRecords {
		byType[newRecord.Type] = newRecord
	}
	assert.Equal(t, 100.0, byType[records.RecordWeight].Value)
	assert.Equal(t, 116.7, byType[records.RecordE1RM].Value) // 100 * (1 + 5/30)
	assert.Equal(t, 500.0, byType[records.RecordVolume].Value)
	assert.Nil(t, byType[records.RecordWeight].PreviousValue)

	// same set again: nothing beaten, nothing unlocked
	respBytes = s.doRequest(ctx, t, "POST", "/records/check", token, checkReq(100, 5), http.StatusOK)
	require.NoError(t, json.Unmarshal(respBytes, &checkResult))
	assert.Empty(t, checkResult.NewRecords)
	assert.False(t, checkResult.FirstPRUnlocked)

	// heavier set beats all three, previous values are kept
	respBytes = s.doRequest(ctx, t, "POST", "/records/check", token, checkReq(105, 5), http.StatusOK)
	require.NoError(t, json.Unmarshal(respBytes, &checkResult))
	require.Len(t, checkResult.NewRecords, 3)
	assert.False(t, checkResult.FirstPRUnlocked)

	byType = make(map[records.RecordType]records.NewRecord)
	for _, newRecord := range checkResult.NewRecords {
		byType[newRecord.Type] = newRecord
	}
	require.NotNil(t, byType[records.RecordWeight].PreviousValue)
	assert.Equal(t, 100.0, *byType[records.RecordWeight].PreviousValue)
	assert.Equal(t, 105.0, byType[records.RecordWeight].Value)

	// would-be is read only: a reported new record must not be stored
	respBytes = s.doRequest(ctx, t, "GET",
		fmt.Sprintf("/records/would-be?exerciseId=%s&weight=120&reps=3", exercise.ID),
		token, nil, http.StatusOK)
	var wouldBe []records.NewRecord
	require.NoError(t, json.Unmarshal(respBytes, &wouldBe))
	require.Len(t, wouldBe, 2) // weight and e1rm, volume 360 < 525

	var exerciseRecords []records.PersonalRecord
	respBytes = s.doRequest(ctx, t, "GET", "/records/exercise/"+exercise.ID, token, nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(respBytes, &exerciseRecords))
	require.Len(t, exerciseRecords, 3)
	for _, pr := range exerciseRecords {
		assert.NotEqual(t, 120.0, pr.Value, "would-be check must not persist")
	}

	var allTime []records.PersonalRecord
	respBytes = s.doRequest(ctx, t, "GET", "/records/alltime", token, nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(respBytes, &allTime))
	assert.Len(t, allTime, 3)

	var recent []records.PersonalRecord
	respBytes = s.doRequest(ctx, t, "GET", "/records/recent?limit=2", token, nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(respBytes, &recent))
	assert.Len(t, recent, 2)

	// first_pr landed in the achievements list
	var unlocked []achievements.Achievement
	respBytes = s.doRequest(ctx, t, "GET", "/achievements", token, nil, http.StatusOK)
	require.NoError(t, json.Unmarshal(respBytes, &unlocked))
	require.Len(t, unlocked, 1)
	assert.Equal(t, achievements.TypeFirstPR, unlocked[0].Type)
}

func (s *IntegrationTestSuite) TestPersonalRecords_invalidParams() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token, _ := s.registerAndLogin(ctx, t)

	cases := map[string]map[string]any{
		"missing exercise": {"weight": 100, "reps": 5, "date": day(0)},
		"zero reps":        {"exerciseId": "x", "weight": 100, "reps": 0, "date": day(0)},
		"negative weight":  {"exerciseId": "x", "weight": -1, "reps": 5, "date": day(0)},
		"bad date":         {"exerciseId": "x", "weight": 100, "reps": 5, "date": "not-a-date"},
	}
	for tn, body := range cases {
		s.T().Run(tn, func(t *testing.T) {
			s.doRequest(ctx, t, "POST", "/records/check", token, body, http.StatusBadRequest)
		})
	}
}
