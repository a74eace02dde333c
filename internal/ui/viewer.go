package ui

import "utp/internal/domain"

// Viewer displays a stored run report in an interactive TUI
type Viewer interface {
	View(report *domain.RunReport) error
}
