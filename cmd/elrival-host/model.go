package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/server"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			MarginRight(1)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// serverMsg wraps one decoded wire message for the bubbletea loop.
type serverMsg struct {
	msg *server.Message
}

// disconnectedMsg signals that the read loop ended.
type disconnectedMsg struct {
	err error
}

// hostModel is the moderator console. It mirrors the broadcast game state
// and turns key presses into moderator commands.
type hostModel struct {
	conn   *websocket.Conn
	logger *log.Logger

	phase    game.Phase
	round    int
	players  []string
	bank     game.BankStatePayload
	turn     string
	ranking  []game.PlayerRank
	question *game.Question
	timer    int
	votes    game.VotesPayload
	result   *game.VoteResult
	duel     *game.Duel
	winner   *game.FinalWinnerPayload
	lastNote string

	eliminating bool
	nameInput   textinput.Model

	width  int
	height int
}

func newHostModel(conn *websocket.Conn, logger *log.Logger) *hostModel {
	input := textinput.New()
	input.Placeholder = "player name"
	input.CharLimit = 32
	input.Width = 24

	return &hostModel{
		conn:      conn,
		logger:    logger.WithPrefix("host"),
		phase:     game.PhaseWaiting,
		round:     1,
		nameInput: input,
	}
}

// readLoop pumps server messages into the program. It runs outside the
// bubbletea loop and exits when the connection drops.
func (m *hostModel) readLoop(program *tea.Program) {
	for {
		var msg server.Message
		if err := m.conn.ReadJSON(&msg); err != nil {
			m.logger.Error("Connection lost", "error", err)
			program.Send(disconnectedMsg{err: err})
			return
		}
		program.Send(serverMsg{msg: &msg})
	}
}

func (m *hostModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case disconnectedMsg:
		m.lastNote = "connection lost"
		return m, tea.Quit

	case serverMsg:
		m.applyServer(msg.msg)
		return m, nil

	case tea.KeyMsg:
		if m.eliminating {
			return m.updateEliminating(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *hostModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "q":
		m.send(server.MessageTypeSetPhase, server.SetPhaseData{Phase: string(game.PhaseQuestions)})
	case "v":
		m.send(server.MessageTypeSetPhase, server.SetPhaseData{Phase: string(game.PhaseVoting)})
	case "p":
		m.send(server.MessageTypeSetPhase, server.SetPhaseData{Phase: string(game.PhasePenalty)})
	case "c":
		m.send(server.MessageTypeJudgeCorrect, nil)
	case "w":
		m.send(server.MessageTypeJudgeWrong, nil)
	case "b":
		m.send(server.MessageTypeBank, nil)
	case "e":
		m.eliminating = true
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink
	case "r":
		m.send(server.MessageTypeReset, nil)
	case "s":
		m.send(server.MessageTypeRequestState, nil)
	}
	return m, nil
}

func (m *hostModel) updateEliminating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.eliminating = false
		m.nameInput.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		m.eliminating = false
		m.nameInput.Blur()
		if name != "" {
			m.send(server.MessageTypeEliminate, server.EliminateData{Name: name})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// send writes one command to the server. Update is serialized by the
// bubbletea loop, so the connection has a single writer.
func (m *hostModel) send(t server.MessageType, data any) {
	msg, err := server.NewMessage(t, data)
	if err != nil {
		m.logger.Error("Failed to build message", "type", t, "error", err)
		return
	}
	if err := m.conn.WriteJSON(msg); err != nil {
		m.logger.Error("Failed to send message", "type", t, "error", err)
		m.lastNote = "send failed: " + err.Error()
	}
}

// applyServer folds one broadcast into the local view.
func (m *hostModel) applyServer(msg *server.Message) {
	decode := func(v any) bool {
		if err := json.Unmarshal(msg.Data, v); err != nil {
			m.logger.Error("Failed to decode payload", "type", msg.Type, "error", err)
			return false
		}
		return true
	}

	switch msg.Type {
	case server.MessageTypePhaseChanged:
		var p game.PhasePayload
		if decode(&p) {
			m.phase = p.Phase
			if m.phase != game.PhaseVoting {
				m.result = nil
			}
		}
	case server.MessageTypeRoundUpdated:
		var p game.RoundPayload
		if decode(&p) {
			m.round = p.Round
		}
	case server.MessageTypePlayersUpdated:
		var p game.PlayersPayload
		if decode(&p) {
			m.players = p.Players
		}
	case server.MessageTypeBankState:
		var p game.BankStatePayload
		if decode(&p) {
			m.bank = p
		}
	case server.MessageTypeTurnUpdated:
		var p game.TurnPayload
		if decode(&p) {
			m.turn = p.Player
		}
	case server.MessageTypeRankingUpdated:
		var p game.RankingPayload
		if decode(&p) {
			m.ranking = p.Ranking
		}
	case server.MessageTypeQuestionUpdated:
		var q game.Question
		if decode(&q) {
			m.question = &q
		}
	case server.MessageTypeTimerUpdated:
		var p game.TimerPayload
		if decode(&p) {
			m.timer = p.Seconds
		}
	case server.MessageTypeVotesUpdated:
		var p game.VotesPayload
		if decode(&p) {
			m.votes = p
		}
	case server.MessageTypeVotingResult:
		var p game.VotingResultPayload
		if decode(&p) {
			m.result = p.Result
		}
	case server.MessageTypePlayerEliminated:
		var p game.EliminatedPayload
		if decode(&p) {
			m.lastNote = p.Name + " has been eliminated"
		}
	case server.MessageTypeFinalState:
		var d game.Duel
		if decode(&d) {
			m.duel = &d
		}
	case server.MessageTypeFinalWinner:
		var p game.FinalWinnerPayload
		if decode(&p) {
			m.winner = &p
		}
	case server.MessageTypeBanked:
		var p game.BankedPayload
		if decode(&p) {
			if p.Auto {
				m.lastNote = fmt.Sprintf("%s topped the chain, %d banked automatically", p.Player, p.Amount)
			} else {
				m.lastNote = fmt.Sprintf("%s banked %d", p.Player, p.Amount)
			}
		}
	case server.MessageTypeAccessDenied:
		var p server.AccessDeniedData
		if decode(&p) {
			m.lastNote = "denied: " + p.Reason
		}
	case server.MessageTypeGameReset:
		m.question = nil
		m.duel = nil
		m.winner = nil
		m.result = nil
		m.votes = game.VotesPayload{}
		m.timer = 0
		m.lastNote = "game reset"
	}
}

func (m *hostModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("EL RIVAL MÁS DÉBIL · moderator console"))
	b.WriteString("\n")

	header := fmt.Sprintf("%s  round %d  turn: %s",
		phaseStyle.Render(strings.ToUpper(string(m.phase))),
		m.round,
		turnStyle.Render(m.turn))
	if m.phase == game.PhaseQuestions {
		header += fmt.Sprintf("  %s", alertStyle.Render(fmt.Sprintf("%02d s", m.timer)))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	left := panelStyle.Render(m.viewBank())
	right := panelStyle.Render(m.viewRanking())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	if section := m.viewPhaseDetail(); section != "" {
		b.WriteString(panelStyle.Render(section))
		b.WriteString("\n")
	}

	if m.lastNote != "" {
		b.WriteString(alertStyle.Render(m.lastNote))
		b.WriteString("\n")
	}

	if m.eliminating {
		b.WriteString("\nEliminate: " + m.nameInput.View() + helpStyle.Render("  enter confirm · esc cancel"))
	} else {
		b.WriteString("\n" + helpStyle.Render("q questions · v voting · p penalty · c correct · w wrong · b bank · e eliminate · r reset · esc quit"))
	}

	return b.String()
}

func (m *hostModel) viewBank() string {
	var b strings.Builder
	b.WriteString("BANK\n")

	rungs := make([]string, len(m.bank.Chain))
	for i, v := range m.bank.Chain {
		s := fmt.Sprintf("%d", v)
		if i == m.bank.ChainIndex {
			s = turnStyle.Render("[" + s + "]")
		}
		rungs[i] = s
	}
	b.WriteString(strings.Join(rungs, " → "))
	b.WriteString(fmt.Sprintf("\nround value: %d\n", m.bank.CurrentChainValue))
	b.WriteString(fmt.Sprintf("banked this round: %d\n", m.bank.BankedRound))
	b.WriteString(fmt.Sprintf("banked total: %d", m.bank.BankedTotal))
	return b.String()
}

func (m *hostModel) viewRanking() string {
	var b strings.Builder
	b.WriteString("PLAYERS\n")
	if len(m.ranking) == 0 {
		b.WriteString("nobody yet, share /join")
		return b.String()
	}
	for _, p := range m.ranking {
		mark := " "
		if !p.Connected {
			mark = "·"
		}
		b.WriteString(fmt.Sprintf("%s %-12s  %d✓ %d✗  bank %d\n", mark, p.Name, p.Correct, p.Wrong, p.BankAmount))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *hostModel) viewPhaseDetail() string {
	switch m.phase {
	case game.PhaseQuestions, game.PhaseTimesUp:
		if m.question == nil {
			return ""
		}
		return fmt.Sprintf("%s\n%s\n%s",
			helpStyle.Render(m.question.Category),
			questionStyle.Render(m.question.Prompt),
			answerStyle.Render("→ "+m.question.Answer))

	case game.PhaseVoting:
		var b strings.Builder
		b.WriteString(fmt.Sprintf("VOTES (%d cast)\n", len(m.votes.Details)))
		names := make([]string, 0, len(m.votes.Summary))
		for name := range m.votes.Summary {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("%-12s %s\n", name, strings.Repeat("■", m.votes.Summary[name])))
		}
		if m.result != nil {
			if m.result.Type == game.VoteTie {
				b.WriteString(alertStyle.Render(fmt.Sprintf("TIE between %s, %s decides",
					strings.Join(m.result.Targets, ", "), m.result.DecisionMaker)))
			} else {
				b.WriteString(alertStyle.Render(fmt.Sprintf("Voted out: %s (%d votes)",
					strings.Join(m.result.Targets, ", "), m.result.Count)))
			}
		}
		return strings.TrimRight(b.String(), "\n")

	case game.PhaseFinalIntro, game.PhasePenalty, game.PhaseFinalResult:
		if m.duel == nil {
			return ""
		}
		var b strings.Builder
		b.WriteString("PENALTY SHOOTOUT")
		if m.duel.SuddenDeath {
			b.WriteString(alertStyle.Render("  SUDDEN DEATH"))
		}
		b.WriteString("\n")
		b.WriteString(renderContestant(m.duel.P1, m.duel.Turn == 0 && m.duel.Winner == ""))
		b.WriteString("\n")
		b.WriteString(renderContestant(m.duel.P2, m.duel.Turn == 1 && m.duel.Winner == ""))
		if m.question != nil && m.phase == game.PhasePenalty {
			b.WriteString("\n\n" + questionStyle.Render(m.question.Prompt) + "\n" + answerStyle.Render("→ "+m.question.Answer))
		}
		if m.winner != nil {
			b.WriteString("\n\n" + alertStyle.Render(fmt.Sprintf("WINNER: %s takes %d", m.winner.Name, m.winner.Amount)))
		}
		return b.String()
	}
	return ""
}

func renderContestant(c *game.Contestant, onSpot bool) string {
	mark := "  "
	if onSpot {
		mark = turnStyle.Render("▶ ")
	}
	shots := make([]string, len(c.History))
	for i, ok := range c.History {
		if ok {
			shots[i] = answerStyle.Render("●")
		} else {
			shots[i] = alertStyle.Render("○")
		}
	}
	return fmt.Sprintf("%s%-12s %s  (%d)", mark, c.Name, strings.Join(shots, " "), c.Score())
}
