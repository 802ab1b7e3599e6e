package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactThemeVariant(t *testing.T) {
	for name, want := range map[string]fyne.ThemeVariant{"dark": theme.VariantDark, "light": theme.VariantLight} {
		th := newCompactTheme(name)
		require.NotNil(t, th.forced, name)
		assert.Equal(t, want, *th.forced, name)
	}
	for _, name := range []string{"system", ""} {
		assert.Nil(t, newCompactTheme(name).forced, "%q should follow the OS variant", name)
	}

	th := newCompactTheme("dark")
	th.setName("system")
	assert.Nil(t, th.forced)
}

func TestCompactThemeSizes(t *testing.T) {
	th := newCompactTheme("system")
	assert.Equal(t, float32(12), th.Size(theme.SizeNameText))
	assert.Equal(t, float32(3), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}
