//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var altModifier = hotkey.ModOption
