package remote

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// gameOverPage renders the page clients are sent to after a crash.
func gameOverPage(level string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Game Over</title></head>
<body style="background:#000;color:#0ff;font-family:monospace;text-align:center">
<h1>GAME OVER</h1>
<p>Crashed in %s</p>
</body>
</html>
`, templ.EscapeString(level))
		return err
	})
}
