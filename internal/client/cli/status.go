package cli

import (
	"fmt"
	"strings"
)

// getStatus renders the prompt badge: user, cart count and theme.
func (a *App) getStatus() string {
	var parts []string

	if u, ok := a.session.User(); ok {
		parts = append(parts, u.Name)
	} else {
		parts = append(parts, "guest")
	}

	if n, ok := a.cart.Count(); ok {
		parts = append(parts, fmt.Sprintf("cart:%d", n))
	}

	theme := "light"
	if a.prefs.DarkTheme() {
		theme = "dark"
	}
	parts = append(parts, theme+"/"+a.prefs.PresetName())

	return "(" + strings.Join(parts, " ") + ")"
}
