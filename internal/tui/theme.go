package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor and "faint" styling is
// only applied on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorControlBg lipgloss.TerminalColor = ac("252", "238")
	colorInputBg   lipgloss.TerminalColor = ac("254", "237")

	colorSuccessFg lipgloss.TerminalColor = ac("28", "77")
	colorErrorFg   lipgloss.TerminalColor = ac("124", "203")
	colorAccentFg  lipgloss.TerminalColor = ac("26", "75")

	colorDoneFg    lipgloss.TerminalColor = ac("242", "243")
	colorOverdueFg lipgloss.TerminalColor = ac("124", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if hasDarkBackground {
		return st.Faint(true)
	}
	return st
}

func styleFlash(kind flashKind) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	switch kind {
	case flashSuccess:
		return st.Foreground(colorSuccessFg)
	case flashError:
		return st.Foreground(colorErrorFg)
	default:
		return st.Bold(false).Foreground(colorAccentFg)
	}
}

// hasDarkBackground is queried once; termenv can block when probed
// repeatedly on some terminals.
var hasDarkBackground = termenv.HasDarkBackground()
