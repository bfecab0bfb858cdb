package system

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open the default browser with the given URL.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}

	return cmd.Start()
}

func browserCommand(goos string, url string) (*exec.Cmd, error) {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "darwin":
		return exec.Command("open", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform \"%s\" encountered while attempting to open browser", goos)
	}
}
