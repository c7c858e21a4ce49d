package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/mwangi254/medibook/configs"
)

type ExpoPushService struct {
	Endpoint    string
	AccessToken string
}

var PushClient *ExpoPushService

type expoPayload struct {
	To    string         `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

func InitPushService() {
	endpoint := config.Config("EXPO_PUSH_URL")
	accessToken := config.Config("EXPO_ACCESS_TOKEN")

	if endpoint == "" {
		endpoint = "https://exp.host/--/api/v2/push/send"
	}

	if accessToken == "" {
		log.Println("⚠️ Push service not configured. Missing Expo access token, notifications disabled.")
		PushClient = nil
		return
	}

	PushClient = &ExpoPushService{
		Endpoint:    endpoint,
		AccessToken: accessToken,
	}
	log.Println("✅ Push service initialized successfully.")
}

func (s *ExpoPushService) send(token, title, body string, data map[string]any) error {
	if !strings.HasPrefix(token, "ExponentPushToken") {
		return fmt.Errorf("invalid push token: %s", token)
	}

	payload := expoPayload{To: token, Title: title, Body: body, Data: data}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", s.Endpoint, bytes.NewBuffer(raw))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("authorization", "Bearer "+s.AccessToken)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("Expo API error: Status %d, Body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("failed to send push via Expo: %s", string(respBody))
	}

	return nil
}

// SendPush delivers best-effort: a missing client, bad token or provider error is
// logged and swallowed so the booking flow never fails on notification problems.
func SendPush(token, title, body string, data map[string]any) {
	if PushClient == nil {
		log.Println("Push client not initialized, skipping push send.")
		return
	}
	if token == "" {
		return
	}

	if err := PushClient.send(token, title, body, data); err != nil {
		log.Printf("🔥 Failed to send push to %s: %v", token, err)
		return
	}

	log.Printf("✅ Push sent successfully to %s", token)
}
