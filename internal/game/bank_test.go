package game

import (
	"reflect"
	"testing"
)

func TestLadderStartsUnclimbed(t *testing.T) {
	t.Parallel()

	l := NewLadder(nil)

	if !reflect.DeepEqual(l.Chain(), DefaultChain) {
		t.Errorf("Nil chain should fall back to default, got %v", l.Chain())
	}
	if l.ChainIndex() != -1 {
		t.Errorf("Fresh ladder index should be -1, got %d", l.ChainIndex())
	}
	if l.CurrentValue() != 0 {
		t.Errorf("Fresh ladder value should be 0, got %d", l.CurrentValue())
	}
}

func TestLadderClimb(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})

	if _, auto := l.OnCorrect(); auto {
		t.Error("First correct should not auto-bank")
	}
	if l.CurrentValue() != 1 {
		t.Errorf("Value after one correct should be 1, got %d", l.CurrentValue())
	}

	l.OnCorrect()
	if l.CurrentValue() != 2 {
		t.Errorf("Value after two correct should be 2, got %d", l.CurrentValue())
	}
}

func TestLadderWrongForfeitsRun(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})
	l.OnCorrect()
	l.OnCorrect()

	l.OnWrong()

	if l.ChainIndex() != -1 {
		t.Errorf("Wrong answer should reset the chain, index is %d", l.ChainIndex())
	}
	if l.Total() != 0 {
		t.Errorf("Unbanked run forfeits nothing from the total, got %d", l.Total())
	}
}

func TestLadderBank(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})
	l.OnCorrect()
	l.OnCorrect()

	amount, ok := l.Bank()
	if !ok || amount != 2 {
		t.Fatalf("Banking at rung 2 should credit 2, got %d ok=%v", amount, ok)
	}
	if l.Total() != 2 || l.RoundTotal() != 2 {
		t.Errorf("Totals after bank should be 2/2, got %d/%d", l.Total(), l.RoundTotal())
	}
	if l.ChainIndex() != -1 {
		t.Errorf("Banking should reset the chain, index is %d", l.ChainIndex())
	}

	if _, ok := l.Bank(); ok {
		t.Error("Banking an unclimbed chain should be a no-op")
	}
}

func TestLadderTopRungAutoBanks(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})
	l.OnCorrect()
	l.OnCorrect()
	l.OnCorrect() // at top rung

	amount, auto := l.OnCorrect()
	if !auto || amount != 5 {
		t.Fatalf("Correct at top rung should auto-bank 5, got %d auto=%v", amount, auto)
	}
	if l.Total() != 5 {
		t.Errorf("Auto-bank should credit the total, got %d", l.Total())
	}
	if l.ChainIndex() != -1 {
		t.Errorf("Auto-bank should reset the chain, index is %d", l.ChainIndex())
	}
}

func TestLadderResetChainKeepsTotal(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})
	l.OnCorrect()
	l.Bank()
	l.OnCorrect()

	l.ResetChain()

	if l.ChainIndex() != -1 || l.RoundTotal() != 0 {
		t.Errorf("ResetChain should clear run and round total, got index=%d round=%d",
			l.ChainIndex(), l.RoundTotal())
	}
	if l.Total() != 1 {
		t.Errorf("ResetChain must never touch the game total, got %d", l.Total())
	}
}

func TestLadderClearRunKeepsRoundTotal(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})
	l.OnCorrect()
	l.Bank()
	l.OnCorrect()

	l.ClearRun()

	if l.ChainIndex() != -1 {
		t.Errorf("ClearRun should drop the unbanked run, index is %d", l.ChainIndex())
	}
	if l.RoundTotal() != 1 {
		t.Errorf("ClearRun should keep the round total, got %d", l.RoundTotal())
	}
}

func TestLadderNormalizesBadIndex(t *testing.T) {
	t.Parallel()

	l := NewLadder([]int{1, 2, 5})
	l.chainIndex = 99

	if l.CurrentValue() != 0 {
		t.Errorf("Out-of-range index should read as unclimbed, got %d", l.CurrentValue())
	}
	if _, auto := l.OnCorrect(); auto {
		t.Error("Climbing from a healed index should not auto-bank")
	}
	if l.CurrentValue() != 1 {
		t.Errorf("Healed ladder should climb from the bottom, got %d", l.CurrentValue())
	}
}
