package gallery

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Bold(true).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0AF", Dark: "#0AF"})

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334455")).
			Padding(0, 1)

	selectedCardStyle = cardStyle.Copy().
				BorderForeground(lipgloss.Color("#0AF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCC")).
			Bold(true)

	uriStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#778899"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#778899")).
			Italic(true).
			Padding(1, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7")).
			Padding(0, 1)
)
