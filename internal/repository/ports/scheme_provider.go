package ports

import "github.com/vistago/vistago-api/internal/domain"

// SchemeProvider reports the display scheme of the host environment. The theme
// service consults it live every time the "system" mode is resolved.
type SchemeProvider interface {
	ColorScheme() domain.ColorScheme
}
