package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// judgeAll feeds alternating answers into the duel, p1 first.
func judgeAll(t *testing.T, d *Duel, answers []bool) {
	t.Helper()
	for _, a := range answers {
		require.NoError(t, d.Judge(a))
	}
}

func TestDuelAlternatesTurns(t *testing.T) {
	t.Parallel()

	d := NewDuel("ANA", "BETO")
	assert.Equal(t, "ANA", d.CurrentName())

	require.NoError(t, d.Judge(true))
	assert.Equal(t, "BETO", d.CurrentName())

	require.NoError(t, d.Judge(false))
	assert.Equal(t, "ANA", d.CurrentName())
}

func TestDuelEarlyClinch(t *testing.T) {
	t.Parallel()

	// ANA: true, true, true. BETO: false, false. After BETO's third miss his
	// best possible finish is 2 < 3, so ANA wins with shots in hand.
	d := NewDuel("ANA", "BETO")
	judgeAll(t, d, []bool{true, false, true, false, true})

	assert.Empty(t, d.Winner, "2-0 down with 3 shots left is still alive")

	require.NoError(t, d.Judge(false))
	assert.Equal(t, "ANA", d.Winner)
	assert.False(t, d.SuddenDeath)
}

func TestDuelRegulationTieOpensSuddenDeath(t *testing.T) {
	t.Parallel()

	d := NewDuel("ANA", "BETO")
	// Both score 3 of 5 in lockstep.
	judgeAll(t, d, []bool{
		true, true,
		true, true,
		true, true,
		false, false,
		false, false,
	})

	assert.Empty(t, d.Winner)
	assert.True(t, d.SuddenDeath)
}

func TestDuelSuddenDeathDecidesOnPairedShots(t *testing.T) {
	t.Parallel()

	d := NewDuel("ANA", "BETO")
	judgeAll(t, d, []bool{
		true, true,
		true, true,
		true, true,
		false, false,
		false, false,
	})
	require.True(t, d.SuddenDeath)

	// ANA scores her sixth shot. The round is unpaired, so no winner yet
	// even though she leads 4-3.
	require.NoError(t, d.Judge(true))
	assert.Empty(t, d.Winner, "sudden death only decides on paired shot counts")

	require.NoError(t, d.Judge(false))
	assert.Equal(t, "ANA", d.Winner)
}

func TestDuelSuddenDeathContinuesOnLevelPair(t *testing.T) {
	t.Parallel()

	d := NewDuel("ANA", "BETO")
	judgeAll(t, d, []bool{
		true, true,
		true, true,
		true, true,
		false, false,
		false, false,
		true, true, // first sudden death pair, still level
	})

	assert.Empty(t, d.Winner)
	assert.Equal(t, "ANA", d.CurrentName(), "next sudden death pair starts again with p1")
}

func TestDuelFreezesAfterWinner(t *testing.T) {
	t.Parallel()

	d := NewDuel("ANA", "BETO")
	judgeAll(t, d, []bool{true, false, true, false, true, false})
	require.Equal(t, "ANA", d.Winner)

	turnBefore := d.Turn
	err := d.Judge(true)
	assert.ErrorIs(t, err, ErrDuelOver)
	assert.Equal(t, turnBefore, d.Turn, "a decided duel never flips the turn")
	assert.Equal(t, 3, d.P1.Shots())
	assert.Equal(t, 3, d.P2.Shots())
}

func TestContestantScore(t *testing.T) {
	t.Parallel()

	c := &Contestant{Name: "ANA", History: []bool{true, false, true, true}}
	assert.Equal(t, 3, c.Score())
	assert.Equal(t, 4, c.Shots())
}
