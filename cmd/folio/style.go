// cmd/folio/style.go
package main

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
