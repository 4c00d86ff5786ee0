package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cl-runtime/cl"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseState int

const (
	stateSelectPlatform browseState = iota
	stateSelectDevice
	stateShowDevice
)

type browseModel struct {
	err       error
	registry  *cl.Registry
	platforms []*cl.Platform
	devices   []*cl.Device
	view      viewport.Model
	width     int
	height    int
	selected  int
	platform  int
	state     browseState
}

type loadedMsg struct {
	err      error
	registry *cl.Registry
}

func newBrowseModel() *browseModel {
	return &browseModel{state: stateSelectPlatform}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadRegistry
}

func (m *browseModel) loadRegistry() tea.Msg {
	reg, err := cl.Initialize()
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{registry: reg}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width - 2
		m.view.Height = msg.Height - 4

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateShowDevice {
				m.view.LineUp(1)
			} else if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateShowDevice {
				m.view.LineDown(1)
			} else if m.selected < m.listLen()-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectPlatform:
				if len(m.platforms) == 0 {
					break
				}
				m.platform = m.selected
				m.devices = m.platforms[m.platform].Devices()
				m.selected = 0
				m.state = stateSelectDevice

			case stateSelectDevice:
				if len(m.devices) == 0 {
					break
				}
				m.view.SetContent(deviceDetail(m.devices[m.selected]))
				m.view.GotoTop()
				m.state = stateShowDevice
			}

		case "esc":
			switch m.state {
			case stateSelectDevice:
				m.selected = m.platform
				m.state = stateSelectPlatform
			case stateShowDevice:
				m.state = stateSelectDevice
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.registry = msg.registry
		m.platforms = msg.registry.Platforms()
	}

	return m, nil
}

func (m *browseModel) listLen() int {
	if m.state == stateSelectDevice {
		return len(m.devices)
	}
	return len(m.platforms)
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.registry == nil {
		return "Enumerating platforms..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("clinfo"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectPlatform:
		if len(m.platforms) == 0 {
			b.WriteString("No platforms available.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a platform:\n\n")
		for i, p := range m.platforms {
			line := fmt.Sprintf("%s  %s", nameStyle.Render(p.Info().Name), p.Info().Version)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • q quit"))

	case stateSelectDevice:
		p := m.platforms[m.platform]
		b.WriteString(fmt.Sprintf("Devices on %s:\n\n", nameStyle.Render(p.Info().Name)))
		for i, d := range m.devices {
			line := fmt.Sprintf("%s  %s", nameStyle.Render(d.Info().Name), deviceTypeName(d.Info().Type))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • esc back • q quit"))

	case stateShowDevice:
		b.WriteString(m.view.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func deviceDetail(d *cl.Device) string {
	info := d.Info()

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Name", info.Name)
	row("Type", deviceTypeName(info.Type))
	row("Vendor", info.Vendor)
	row("Version", info.Version)
	row("Profile", info.Profile)
	row("Compute units", fmt.Sprintf("%d", info.MaxComputeUnits))
	row("Max alloc size", fmt.Sprintf("%d", info.MaxMemAllocSize))
	row("Image support", fmt.Sprintf("%t", info.ImageSupport))
	if info.ILVersion != "" {
		row("IL version", info.ILVersion)
	}
	if len(info.BuiltInKernels) > 0 {
		row("Built-in kernels", strings.Join(info.BuiltInKernels, ";"))
	}
	if info.QueueOnDeviceMaxSize > 0 {
		row("On-device queue", fmt.Sprintf("%d bytes max", info.QueueOnDeviceMaxSize))
	}
	if info.Extensions != "" {
		row("Extensions", info.Extensions)
	}
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newBrowseModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
