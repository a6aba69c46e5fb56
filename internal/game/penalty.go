package game

import "errors"

var ErrDuelOver = errors.New("duel already has a winner")

const regulationShots = 5

// Contestant is one side of the penalty shootout. History records every
// judged answer in order; score is the count of trues.
type Contestant struct {
	Name    string `json:"name"`
	History []bool `json:"history"`
}

// Score returns the number of correct answers.
func (c *Contestant) Score() int {
	n := 0
	for _, ok := range c.History {
		if ok {
			n++
		}
	}
	return n
}

// Shots returns the number of answers taken.
func (c *Contestant) Shots() int { return len(c.History) }

// Duel is the head-to-head finale: alternating turns, best of five, then
// sudden death in paired rounds. Once Winner is set the duel is frozen.
type Duel struct {
	P1          *Contestant `json:"p1"`
	P2          *Contestant `json:"p2"`
	Turn        int         `json:"turn"`
	Winner      string      `json:"winner,omitempty"`
	SuddenDeath bool        `json:"suddenDeath"`
}

// NewDuel starts a duel between the two finalists. p1 shoots first.
func NewDuel(p1, p2 string) *Duel {
	return &Duel{
		P1: &Contestant{Name: p1, History: []bool{}},
		P2: &Contestant{Name: p2, History: []bool{}},
	}
}

// current returns the contestant whose turn it is.
func (d *Duel) current() *Contestant {
	if d.Turn == 0 {
		return d.P1
	}
	return d.P2
}

// CurrentName returns the name of the contestant on the spot.
func (d *Duel) CurrentName() string {
	return d.current().Name
}

// Judge records one judged answer for the contestant on the spot. It
// evaluates the winner before flipping the turn; once a winner exists the
// turn freezes and further answers are rejected.
func (d *Duel) Judge(correct bool) error {
	if d.Winner != "" {
		return ErrDuelOver
	}
	c := d.current()
	c.History = append(c.History, correct)
	d.evaluate()
	if d.Winner == "" {
		d.Turn = 1 - d.Turn
	}
	return nil
}

// evaluate applies the winner rules.
//
// Regulation (both within 5 shots): a contestant wins the moment the
// opponent's best possible finish cannot reach their score, which can
// happen before either side completes 5 shots. A 5-5 tie on equal scores
// opens sudden death.
//
// Sudden death: evaluated only when both sides have taken the same number
// of shots; the higher score at a paired count wins, equal scores continue.
func (d *Duel) evaluate() {
	s1, s2 := d.P1.Score(), d.P2.Score()
	n1, n2 := d.P1.Shots(), d.P2.Shots()

	if n1 <= regulationShots && n2 <= regulationShots {
		switch {
		case s1 > s2+(regulationShots-n2):
			d.Winner = d.P1.Name
		case s2 > s1+(regulationShots-n1):
			d.Winner = d.P2.Name
		case n1 == regulationShots && n2 == regulationShots && s1 == s2:
			d.SuddenDeath = true
		}
		return
	}

	d.SuddenDeath = true
	if n1 == n2 {
		if s1 > s2 {
			d.Winner = d.P1.Name
		} else if s2 > s1 {
			d.Winner = d.P2.Name
		}
	}
}
