package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kingrain94/waapify-relay/internal/api/dto"
)

// Prints the live message updates of the tenant the token is scoped to.
func main() {
	url := flag.String("url", "ws://localhost:10000/api/v1/messages/stream", "Message stream endpoint")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: stream_client [-url ws://host/api/v1/messages/stream] <JWT_TOKEN>")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+flag.Arg(0))
	fmt.Printf("Connecting to %s...\n", *url)
	conn, _, err := websocket.DefaultDialer.Dial(*url, header)
	if err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer conn.Close()
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteMessage(websocket.PongMessage, nil)
	})

	fmt.Println("Connected! Waiting for message updates...")
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}

			var message dto.MessageResponse
			if err := json.Unmarshal(raw, &message); err != nil {
				fmt.Printf("%s\n", string(raw))
				continue
			}
			fmt.Printf("%s  %-11s %-9s %s -> %s\n",
				message.CreatedAt.Format(time.RFC3339), message.Kind, message.Status, message.CRMMessageID, message.Recipient)
		}
	}()

	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\nDisconnecting...")

		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close:", err)
			return
		}

		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
