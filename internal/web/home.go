package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>White Elephant</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 40rem; }
      .hero h1 { margin-bottom: 0.25rem; }
      .panel { border: 1px solid #ddd; border-radius: 8px; padding: 1rem; margin-top: 1rem; }
    </style>
  </head>
  <body>
    <main>
      <header class="hero">
        <h1>White Elephant</h1>
        <p>Roll the dice, pick a present, steal the best one.</p>
      </header>
      <section class="panel">
        <h2>Join a game</h2>
        <p>Open the board link your host shared to watch the exchange live.</p>
      </section>
    </main>
  </body>
</html>
`)
		return err
	})
}
