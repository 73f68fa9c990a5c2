package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"nhooyr.io/websocket"

	"ledbar/apa102"
)

// createWebsocketHandler streams every transmitted frame to the client
// until it disconnects.
func createWebsocketHandler(strip *apa102.Strip) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			http.Error(w, fmt.Sprintf("websocket upgrade failed: %s", err), http.StatusInternalServerError)
			return
		}
		defer c.Close(websocket.StatusInternalError, "the sky is falling")

		// We never expect messages from the client, so CloseRead gives
		// us a context that ends when the connection does.
		ctx := c.CloseRead(r.Context())

		unsub, frames := strip.Subscribe()
		defer unsub()

		for {
			select {
			case <-ctx.Done():
				c.Close(websocket.StatusNormalClosure, "")
				return
			case frame := <-frames:
				js, err := json.Marshal(frame)
				if err != nil {
					log.Err(err).Msg("Failed to marshal frame for websocket")
					continue
				}

				if err := writeTimeout(ctx, 5*time.Second, c, js); err != nil {
					log.Debug().Err(err).Msg("Websocket write failed, dropping client")
					return
				}
			}
		}
	}
}

func writeTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.Write(ctx, websocket.MessageText, msg)
}
