package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"mamafit-chatbot/internal/dialog"
	"mamafit-chatbot/internal/types"
)

// webhookPayload is the slice of the Messenger webhook event we consume.
type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Message *struct {
				Text string `json:"text"`
			} `json:"message"`
		} `json:"messaging"`
	} `json:"entry"`
}

// handleWebhookVerify answers the Facebook subscription handshake.
func (s *Server) handleWebhookVerify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == s.cfg.VerifyToken && s.cfg.VerifyToken != "" {
		log.Println("[webhook] verified successfully")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	log.Println("[webhook] verification failed")
	s.writeError(w, http.StatusForbidden, "forbidden")
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if s.cfg.AppSecret != "" && !verifySignature(s.cfg.AppSecret, body, r.Header.Get("X-Hub-Signature-256")) {
		log.Println("[webhook] invalid signature")
		s.writeError(w, http.StatusForbidden, "invalid signature")
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if payload.Object == "page" {
		for _, entry := range payload.Entry {
			for _, m := range entry.Messaging {
				if m.Message == nil || m.Message.Text == "" {
					continue
				}
				go s.processIncoming(m.Sender.ID, m.Message.Text)
			}
		}
	}
	s.writeJSON(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// verifySignature checks the X-Hub-Signature-256 header against an
// HMAC-SHA256 of the raw body, in constant time.
func verifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// processIncoming runs a turn for one webhook message and delivers the
// outcome. Delivery failures are logged, never retried.
func (s *Server) processIncoming(senderID, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	log.Printf("[webhook] processing message from %s", senderID)
	result := s.engine.ProcessTurn(ctx, text, senderID)
	s.logTurn(senderID, result)

	if result.UsedIntent == dialog.IntentManualMode {
		log.Printf("[webhook] user %s is in manual mode - bot will not respond", senderID)
		return
	}
	if s.sender == nil {
		log.Println("[webhook] no sender configured, dropping reply")
		return
	}
	if result.ImageURL != "" {
		if err := s.sender.SendImage(ctx, senderID, result.ImageURL); err != nil {
			log.Printf("[webhook] failed to send image to %s: %v", senderID, err)
		}
	}
	if result.Reply != "" {
		if err := s.sender.SendText(ctx, senderID, result.Reply); err != nil {
			log.Printf("[webhook] failed to send reply to %s: %v", senderID, err)
		}
	}
}
