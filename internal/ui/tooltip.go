package ui

import (
	"fyne.io/fyne/v2"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// rowAction is an icon-only button on an item row. The tooltip names the
// action and the item it applies to.
func rowAction(icon fyne.Resource, verb, label string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(verb + " " + label)
	return btn
}
