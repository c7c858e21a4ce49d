package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// The hub fans booking events out to connected doctor dashboards so new
// appointments show up without polling.

type Client struct {
	DoctorID uuid.UUID
	Conn     *websocket.Conn
}

type BookingEvent struct {
	Type      string    `json:"type"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	BookingID string    `json:"booking_id"`
	Date      string    `json:"date"`
	SlotKey   string    `json:"slot"`
	Patient   string    `json:"patient"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *BookingEvent, 16)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Doctor dashboard connected: %s", client.DoctorID)
			clientsMu.Lock()
			clients[client.DoctorID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Doctor dashboard disconnected: %s", client.DoctorID)
			clientsMu.Lock()
			if conn, ok := clients[client.DoctorID]; ok && conn == client.Conn {
				delete(clients, client.DoctorID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			conn, ok := clients[event.DoctorID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Error sending event to doctor %s: %v", event.DoctorID, err)
				conn.Close()
				clientsMu.Lock()
				delete(clients, event.DoctorID)
				clientsMu.Unlock()
			}
		}
	}
}

// Notify queues an event without blocking the request that produced it.
func Notify(event *BookingEvent) {
	select {
	case Broadcast <- event:
	default:
		log.Println("Event channel full, dropping booking event")
	}
}
