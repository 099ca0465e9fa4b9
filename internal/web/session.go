package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/greetdeck/greetdeck/internal/ui"
)

// Message types on /ws.
const (
	MsgInput  = "input"
	MsgSubmit = "submit"
	MsgState  = "state"
)

// maxMessageSize bounds a single client frame.
const maxMessageSize = 64 << 10

// ClientMessage is sent by the page.
type ClientMessage struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// StateMessage is pushed to the page after every surface change.
type StateMessage struct {
	Type string `json:"type"`
	ui.State
}

// HandleWS upgrades the request and runs one surface for the lifetime of the
// connection. Calls still in flight when the connection ends are dropped.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warning(fmt.Sprintf("websocket upgrade: %v", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	surface := ui.New(s.invoker, ui.WithLogger(s.log))
	defer surface.Close()

	var writeMu sync.Mutex
	push := func(st ui.State) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(StateMessage{Type: MsgState, State: st}); err != nil {
			s.log.Debug(fmt.Sprintf("websocket write: %v", err))
		}
	}

	push(surface.State())
	surface.Subscribe(push)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warning(fmt.Sprintf("websocket read: %v", err))
			}
			return
		}

		switch msg.Type {
		case MsgInput:
			surface.SetInput(msg.Value)
		case MsgSubmit:
			surface.Submit(ui.NewSubmitEvent())
		default:
			s.log.Debug(fmt.Sprintf("websocket: ignoring message type %q", msg.Type))
		}
	}
}
