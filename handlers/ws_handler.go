package handlers

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/mwangi254/medibook/configs"
	ws "github.com/mwangi254/medibook/websocket"
)

// ServeWs upgrades a doctor dashboard connection. Browsers cannot set an
// Authorization header on the upgrade request, so the JWT rides in ?token=.
func ServeWs(c *websocket.Conn) {
	tokenString := c.Query("token")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		log.Println("Rejected websocket connection: invalid token")
		c.Close()
		return
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["role"] != "doctor" {
		log.Println("Rejected websocket connection: not a doctor token")
		c.Close()
		return
	}
	doctorID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		c.Close()
		return
	}

	client := &ws.Client{DoctorID: doctorID, Conn: c}
	ws.Register <- client
	defer func() {
		ws.Unregister <- client
		c.Close()
	}()

	// Drain the connection; the hub only pushes, it never reads.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
