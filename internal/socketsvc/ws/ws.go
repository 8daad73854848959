package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Ws keeps track of connected dashboard clients. Clients are
// listen-only: they receive sale and stock-alert events, nothing
// they send is routed anywhere.
type Ws struct {
	connMap sync.Map // socketId -> *websocket.Conn
}

func NewWs() *Ws {
	return &Ws{}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
}

// Broadcast sends the payload to every connected client. Dead
// connections are dropped from the registry.
func (s *Ws) Broadcast(payload []byte) {
	s.connMap.Range(func(key, value interface{}) bool {
		socketId := key.(string)
		conn := value.(*websocket.Conn)

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("dropping socket %s after write error: %v", socketId, err)
			conn.Close()
			s.connMap.Delete(socketId)
		}
		return true
	})
}
