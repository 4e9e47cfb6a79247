package domain

// ThemeMode is the user's display-mode preference. ThemeSystem defers to the
// scheme reported by the host environment.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// ColorScheme is a resolved display scheme. Unlike ThemeMode it is never
// "system": resolution happens at read time.
type ColorScheme string

const (
	SchemeLight ColorScheme = "light"
	SchemeDark  ColorScheme = "dark"
)
