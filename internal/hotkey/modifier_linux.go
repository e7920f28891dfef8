//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 reports Alt as Mod1.
var altModifier = hotkey.Mod1
