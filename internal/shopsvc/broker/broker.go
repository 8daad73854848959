package broker

import (
	"encoding/json"

	"github.com/clickbuy/shop-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker publishes shop events for the socket service to fan out.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) publish(topic, msgType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := &comm.WSMessage{Type: msgType, Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := b.Conn.Publish(topic, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// PublishSale announces a committed checkout.
func (b *Broker) PublishSale(event comm.SaleEvent) error {
	return b.publish(comm.TopicSales, "sale", event)
}

// PublishStockAlert announces a card running low on stock.
func (b *Broker) PublishStockAlert(alert comm.StockAlert) error {
	return b.publish(comm.TopicStock, "stock-alert", alert)
}
