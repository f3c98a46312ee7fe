package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Open launches the system browser for a URL. The command is detached so
// the TUI keeps the terminal. BROWSER, if set, wins over the platform
// default.
func Open(url string) error {
	var cmd *exec.Cmd
	if b := os.Getenv("BROWSER"); b != "" {
		cmd = exec.Command(b, url)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", url)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
		default:
			cmd = exec.Command("xdg-open", url)
		}
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	go cmd.Wait()
	return nil
}
