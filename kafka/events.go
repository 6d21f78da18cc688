package kafka

import "time"

// Event types
const (
	EventTypeOrderStatusChanged  = "order.status_changed"
	EventTypeOrderReceived       = "order.received"
	EventTypeReorderAlertCreated = "reorder.alert_created"
	EventTypePartConsumed        = "part.consumed"
)

// Kafka topics
const (
	TopicOrders        = "purchase-orders"
	TopicReorderAlerts = "reorder-alerts"
	TopicPartsConsumed = "parts-consumed"
)

// Event is anything the service announces after a commit
type Event interface {
	EventType() string
	Topic() string
	// PartitionKey keeps events of one aggregate ordered
	PartitionKey() string
}

// Envelope carries the metadata shared by every event
type Envelope struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

type enveloped interface {
	envelope() *Envelope
}

func (e *Envelope) envelope() *Envelope { return e }

// OrderStatusChangedEvent is published after every committed order transition
type OrderStatusChangedEvent struct {
	Envelope
	OrderID        uint   `json:"order_id"`
	OrderNumber    string `json:"order_number"`
	VendorID       uint   `json:"vendor_id"`
	From           string `json:"from"`
	To             string `json:"to"`
	TrackingNumber string `json:"tracking_number,omitempty"`
}

func (OrderStatusChangedEvent) EventType() string { return EventTypeOrderStatusChanged }
func (OrderStatusChangedEvent) Topic() string     { return TopicOrders }
func (e OrderStatusChangedEvent) PartitionKey() string {
	return e.OrderNumber
}

// ReceivedLine is one line of a received order
type ReceivedLine struct {
	PartID   uint `json:"part_id"`
	Quantity int  `json:"quantity"`
	NewQty   int  `json:"new_qty"`
}

// OrderReceivedEvent is published once an order's goods are booked into inventory
type OrderReceivedEvent struct {
	Envelope
	OrderID     uint           `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	Lines       []ReceivedLine `json:"lines"`
}

func (OrderReceivedEvent) EventType() string { return EventTypeOrderReceived }
func (OrderReceivedEvent) Topic() string     { return TopicOrders }
func (e OrderReceivedEvent) PartitionKey() string {
	return e.OrderNumber
}

// ReorderAlertCreatedEvent is published for each alert a scan inserts
type ReorderAlertCreatedEvent struct {
	Envelope
	AlertID      uint   `json:"alert_id"`
	PartID       uint   `json:"part_id"`
	PartNumber   string `json:"part_number"`
	CurrentQty   int    `json:"current_qty"`
	ReorderPoint int    `json:"reorder_point"`
	ReorderQty   int    `json:"reorder_qty"`
	VendorID     *uint  `json:"vendor_id,omitempty"`
}

func (ReorderAlertCreatedEvent) EventType() string { return EventTypeReorderAlertCreated }
func (ReorderAlertCreatedEvent) Topic() string     { return TopicReorderAlerts }
func (e ReorderAlertCreatedEvent) PartitionKey() string {
	return e.PartNumber
}

// PartConsumedEvent is produced by shop-floor systems when parts leave stock
type PartConsumedEvent struct {
	Envelope
	PartID   uint   `json:"part_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Source   string `json:"source"`
}

func (PartConsumedEvent) EventType() string { return EventTypePartConsumed }
func (PartConsumedEvent) Topic() string     { return TopicPartsConsumed }
func (e PartConsumedEvent) PartitionKey() string {
	return e.Source
}
