package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBallotRejectsDoubleVote(t *testing.T) {
	t.Parallel()

	b := NewBallot()
	require.NoError(t, b.Cast("ANA", "BETO"))

	err := b.Cast("ANA", "CARLA")
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, b.CastCount())
	assert.Equal(t, map[string]int{"BETO": 1}, b.Tally(), "rejected vote must not overwrite the first")
}

func TestBallotResolveWaitsForEveryone(t *testing.T) {
	t.Parallel()

	b := NewBallot()
	require.NoError(t, b.Cast("ANA", "CARLA"))
	require.NoError(t, b.Cast("BETO", "CARLA"))

	assert.Nil(t, b.Resolve(3, "ANA"), "two of three votes must not resolve")

	require.NoError(t, b.Cast("CARLA", "ANA"))
	res := b.Resolve(3, "ANA")
	require.NotNil(t, res)
	assert.Equal(t, VoteClear, res.Type)
	assert.Equal(t, "CARLA", res.Target)
	assert.Equal(t, []string{"CARLA"}, res.Targets)
	assert.Equal(t, 2, res.Count)
	assert.Empty(t, res.DecisionMaker)
}

func TestBallotResolveTie(t *testing.T) {
	t.Parallel()

	b := NewBallot()
	require.NoError(t, b.Cast("ANA", "BETO"))
	require.NoError(t, b.Cast("BETO", "ANA"))

	res := b.Resolve(2, "ANA")
	require.NotNil(t, res)
	assert.Equal(t, VoteTie, res.Type)
	assert.Empty(t, res.Target, "a tie has no single target")
	assert.Equal(t, []string{"ANA", "BETO"}, res.Targets, "tied targets come back sorted")
	assert.Equal(t, "ANA", res.DecisionMaker)
}

func TestBallotResolveOrderIndependent(t *testing.T) {
	t.Parallel()

	// Same vote multiset in two arrival orders.
	first := NewBallot()
	require.NoError(t, first.Cast("ANA", "CARLA"))
	require.NoError(t, first.Cast("BETO", "ANA"))
	require.NoError(t, first.Cast("CARLA", "ANA"))

	second := NewBallot()
	require.NoError(t, second.Cast("CARLA", "ANA"))
	require.NoError(t, second.Cast("ANA", "CARLA"))
	require.NoError(t, second.Cast("BETO", "ANA"))

	assert.Equal(t, first.Resolve(3, "X"), second.Resolve(3, "X"))
}

func TestBallotReset(t *testing.T) {
	t.Parallel()

	b := NewBallot()
	require.NoError(t, b.Cast("ANA", "BETO"))

	b.Reset()

	assert.Zero(t, b.CastCount())
	assert.Empty(t, b.Votes())
	require.NoError(t, b.Cast("ANA", "CARLA"), "reset opens a fresh cycle for every voter")
}

func TestBallotVotesKeepArrivalOrder(t *testing.T) {
	t.Parallel()

	b := NewBallot()
	require.NoError(t, b.Cast("CARLA", "ANA"))
	require.NoError(t, b.Cast("ANA", "CARLA"))

	votes := b.Votes()
	require.Len(t, votes, 2)
	assert.Equal(t, Vote{Voter: "CARLA", Target: "ANA"}, votes[0])
	assert.Equal(t, Vote{Voter: "ANA", Target: "CARLA"}, votes[1])
}
