// shelfpack packs rectangular items into a fixed container.
//
// Build:
//
//	go build -o shelfpack ./cmd/shelfpack
//
// The desktop viewer (shelfpack view) needs the fyne system dependencies;
// see https://docs.fyne.io/started/.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/piwi3910/shelfpack/internal/cmd"
	"github.com/piwi3910/shelfpack/internal/version"
)

func main() {
	if err := fang.Execute(context.Background(), cmd.NewRootCmd(), fang.WithVersion(version.GetFullVersion())); err != nil {
		os.Exit(1)
	}
}
