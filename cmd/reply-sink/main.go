// Command reply-sink is a local stand-in for the reply API. Point LINE_API_BASE_URL at it
// to see the replies the bot would send.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strings"

	"github.com/keywatch/keyword-bot/internal/services/replysender"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func replyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		http.Error(w, "Missing bearer token", http.StatusUnauthorized)
		return
	}
	var payload replysender.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	for _, msg := range payload.Messages {
		log.Info().Str("reply_token", payload.ReplyToken).Str("type", msg.Type).Msg(msg.Text)
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte("{}"))
}

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	http.HandleFunc(replysender.ReplyPath, replyHandler)
	log.Info().Str("addr", *addr).Msg("Reply sink listening")
	if err := http.ListenAndServe(*addr, nil); err != nil { //nolint:gosec // local development only
		log.Fatal().Err(err).Msg("Reply sink stopped")
	}
}
