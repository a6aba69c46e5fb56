package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/AlexZuga94/El-rival-m-s-debil-online/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client. A connection
// may be bound to a player identity after a register message; moderator
// commands are accepted from any connection, mirroring the living-room
// setup where the host screen is just another client.
type Connection struct {
	conn       *websocket.Conn
	send       chan *Message
	playerName string
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	closeOnce  sync.Once
	session    *game.Session
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, session *game.Session) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
		session: session,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer binds this connection to a player identity
func (c *Connection) SetPlayer(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerName = name
}

// GetPlayer returns the bound player identity, empty if unregistered
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	if c.session == nil {
		c.sendDenied("game not ready")
		return
	}

	switch msg.Type {
	case MessageTypeRegister:
		var data RegisterData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendDenied("failed to parse register data")
			return
		}
		c.handleRegister(data)

	case MessageTypeSetPhase:
		var data SetPhaseData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendDenied("failed to parse phase data")
			return
		}
		if err := c.session.SetPhase(game.Phase(data.Phase)); err != nil {
			c.sendDenied(err.Error())
		}

	case MessageTypeJudgeCorrect:
		if err := c.session.JudgeAnswer(true); err != nil {
			c.sendDenied(err.Error())
		}

	case MessageTypeJudgeWrong:
		if err := c.session.JudgeAnswer(false); err != nil {
			c.sendDenied(err.Error())
		}

	case MessageTypeBank:
		if err := c.session.ManualBank(); err != nil {
			c.sendDenied(err.Error())
		}

	case MessageTypeCastVote:
		var data CastVoteData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendDenied("failed to parse vote data")
			return
		}
		voter := c.GetPlayer()
		if voter == "" {
			c.sendDenied("register before voting")
			return
		}
		if err := c.session.CastVote(voter, data.Target); err != nil {
			c.sendDenied(err.Error())
		}

	case MessageTypeEliminate:
		var data EliminateData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendDenied("failed to parse eliminate data")
			return
		}
		if err := c.session.Eliminate(data.Name); err != nil {
			c.sendDenied(err.Error())
		}

	case MessageTypeReset:
		c.session.Reset()

	case MessageTypeRequestState:
		c.replayState()

	default:
		c.sendDenied("unknown message type: " + msg.Type.String())
	}
}

func (c *Connection) handleRegister(data RegisterData) {
	created, err := c.session.Register(data.Name)
	if err != nil {
		c.sendDenied(err.Error())
		return
	}

	name := game.CleanName(data.Name)
	c.SetPlayer(name)
	c.logger.Info("Player bound to connection", "player", name, "rejoined", !created)

	response, _ := NewMessage(MessageTypeRegistered, RegisteredData{Name: name, Rejoined: !created})
	_ = c.SendMessage(response)

	// A rejoining player gets the full view replayed on just this
	// connection; everyone else already has it.
	if !created {
		c.replayState()
	}
}

// replayState sends the complete current game view to this connection only.
func (c *Connection) replayState() {
	if c.session == nil {
		return
	}
	for _, e := range c.session.Replay() {
		msg, err := messageFromEvent(e)
		if err != nil {
			c.logger.Error("Failed to encode replay event", "type", e.Type, "error", err)
			continue
		}
		_ = c.SendMessage(msg)
	}
}

// sendDenied sends a single access_denied event to this client
func (c *Connection) sendDenied(reason string) {
	msg, err := NewMessage(MessageTypeAccessDenied, AccessDeniedData{Reason: reason})
	if err != nil {
		c.logger.Error("Failed to create access denied message", "error", err)
		return
	}

	_ = c.SendMessage(msg)
}
