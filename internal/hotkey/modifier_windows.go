//go:build windows

package hotkey

import "golang.design/x/hotkey"

var altModifier = hotkey.ModAlt
