package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowserCommand(t *testing.T) {
	const url = "http://localhost:8501"

	name, args := browserCommand("windows", url)
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, []string{"url.dll,FileProtocolHandler", url}, args)

	name, args = browserCommand("darwin", url)
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{url}, args)

	name, _ = browserCommand("freebsd", url)
	assert.Equal(t, "xdg-open", name)
}

func TestFallbackCommands(t *testing.T) {
	assert.Equal(t, []string{"explorer"}, fallbackCommands("windows"))
	assert.Contains(t, fallbackCommands("linux"), "firefox")
	assert.Empty(t, fallbackCommands("darwin"))
}

func TestOpenBrowser_RejectsNonHTTP(t *testing.T) {
	assert.Error(t, OpenBrowser("file:///etc/passwd"))
	assert.Error(t, OpenBrowserWithFallback("javascript:alert(1)"))
}
