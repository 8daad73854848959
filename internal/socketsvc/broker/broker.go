package broker

import (
	"encoding/json"

	"github.com/clickbuy/shop-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker consumes shop events from NATS and fans them out to
// connected websocket clients.
type Broker struct {
	Conn      *nats.Conn
	Broadcast func(payload []byte)
}

func NewBroker(conn *nats.Conn, fncBroadcast func(payload []byte)) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// handleMessages receives shop service events and relays them as-is.
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.WSMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case "sale", "stock-alert":
		b.Broadcast(msgNats.Data)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}
