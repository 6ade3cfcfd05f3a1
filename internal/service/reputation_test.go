package service

import (
	"sync"
	"testing"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDeltasMultipleAccounts(t *testing.T) {
	f := newFixture()
	f.seedUser(1)
	f.seedUser(2)

	err := f.reputationService.ApplyDeltas(f.repositories, []model.ReputationDelta{
		{AccountID: 1, Points: model.PointsUpvoteGiven, Reason: model.ReasonUpvoteGiven},
		{AccountID: 2, Points: model.PointsUpvoteReceived, Reason: model.ReasonUpvoteReceived},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.reputation(1))
	assert.Equal(t, 2, f.reputation(2))
}

func TestApplyDeltasAllowsNegativeBalance(t *testing.T) {
	f := newFixture()
	f.seedUser(1)

	err := f.reputationService.ApplyDeltas(f.repositories, []model.ReputationDelta{
		{AccountID: 1, Points: model.PointsDownvoteReceived, Reason: model.ReasonDownvoteReceived},
		{AccountID: 1, Points: model.PointsDownvoteReceived, Reason: model.ReasonDownvoteReceived},
	})
	require.NoError(t, err)

	assert.Equal(t, -4, f.reputation(1))
}

func TestApplyDeltasEmptySetIsNoop(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.reputationService.ApplyDeltas(f.repositories, nil))
}

func TestApplyDeltasUnknownAccount(t *testing.T) {
	f := newFixture()

	err := f.reputationService.ApplyDeltas(f.repositories, []model.ReputationDelta{
		{AccountID: 42, Points: 1, Reason: model.ReasonUpvoteGiven},
	})
	require.ErrorIs(t, err, dto.ErrNotFound)
}

func TestApplyDeltasOppositeOrdersDoNotDeadlock(t *testing.T) {
	f := newFixture()
	f.seedUser(1)
	f.seedUser(2)

	// two workers touch the same two accounts in opposite order, many times
	const iterations = 200
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			err := f.reputationService.ApplyDeltas(f.repositories, []model.ReputationDelta{
				{AccountID: 1, Points: 1, Reason: model.ReasonUpvoteGiven},
				{AccountID: 2, Points: 2, Reason: model.ReasonUpvoteReceived},
			})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < iterations; i++ {
			err := f.reputationService.ApplyDeltas(f.repositories, []model.ReputationDelta{
				{AccountID: 2, Points: 2, Reason: model.ReasonUpvoteReceived},
				{AccountID: 1, Points: 1, Reason: model.ReasonUpvoteGiven},
			})
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	assert.Equal(t, 2*iterations, f.reputation(1))
	assert.Equal(t, 4*iterations, f.reputation(2))
}

func TestAccountPoints(t *testing.T) {
	f := newFixture()
	f.seedUser(1)

	require.NoError(t, f.repositories.User().AdjustReputation(1, 7))

	points, err := f.reputationService.AccountPoints(1)
	require.NoError(t, err)
	assert.Equal(t, 7, points)

	_, err = f.reputationService.AccountPoints(99)
	require.ErrorIs(t, err, dto.ErrNotFound)
}
