package util

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// linuxFallbacks browsers tried when xdg-open is unavailable.
var linuxFallbacks = []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}

// browserCommand returns the launcher for goos.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

// fallbackCommands launchers tried after browserCommand fails.
func fallbackCommands(goos string) []string {
	switch goos {
	case "windows":
		return []string{"explorer"}
	case "linux":
		return linuxFallbacks
	}
	return nil
}

// OpenBrowser opens the dashboard url in the default browser.
// Only http(s) urls are accepted.
func OpenBrowser(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("refusing to open non-http url %q", url)
	}
	name, args := browserCommand(runtime.GOOS, url)
	return exec.Command(name, args...).Start()
}

// OpenBrowserWithFallback tries OpenBrowser, then the platform's fallback
// launchers that are present on PATH.
func OpenBrowserWithFallback(url string) error {
	err := OpenBrowser(url)
	if err == nil {
		return nil
	}
	if !strings.HasPrefix(url, "http") {
		return err
	}

	for _, name := range fallbackCommands(runtime.GOOS) {
		if _, lookErr := exec.LookPath(name); lookErr != nil {
			continue
		}
		if startErr := exec.Command(name, url).Start(); startErr == nil {
			return nil
		}
	}
	return fmt.Errorf("open browser: %w", err)
}
