package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// GameBoard renders the viewer shell for one game. The page holds no state of
// its own: it loads players and presents over the API and follows the live
// event stream for turn-by-turn updates.
func GameBoard(gameID, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`); err != nil {
			return err
		}
		if err := writeEscaped(w, name); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 48rem; }
      #log { border: 1px solid #ddd; border-radius: 8px; padding: 1rem; min-height: 12rem; }
      #log p { margin: 0.25rem 0; }
    </style>
  </head>
  <body data-game-id="`); err != nil {
			return err
		}
		if err := writeEscaped(w, gameID); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `">
    <main>
      <h1>`); err != nil {
			return err
		}
		if err := writeEscaped(w, name); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</h1>
      <section id="log" aria-live="polite"></section>
      <script>
        const log = document.getElementById("log");
        const proto = location.protocol === "https:" ? "wss" : "ws";
        const ws = new WebSocket(proto + "://" + location.host + "/ws/events");
        ws.onmessage = (msg) => {
          const event = JSON.parse(msg.data);
          const line = document.createElement("p");
          line.textContent = event.from_present_id
            ? "player " + event.player_id + " took present " + event.present_id
            : event.present_id
              ? "player " + event.player_id + " picked present " + event.present_id
              : "player " + event.player_id + " is up";
          log.prepend(line);
        };
      </script>
    </main>
  </body>
</html>
`)
		return err
	})
}

func writeEscaped(w io.Writer, s string) error {
	_, err := io.WriteString(w, templ.EscapeString(s))
	return err
}
