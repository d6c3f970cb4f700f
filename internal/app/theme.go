package app

import "charm.land/lipgloss/v2"

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activityStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	tabStyle                 = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	tabActiveStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Bold(true).Padding(0, 1)
	columnHeaderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	rowStyle                 = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	inactiveRowStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	dividerStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	listFooterStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	listErrorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	filterLabelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	filterFocusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	filterChipStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	filterDirtyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Bold(true)
	formLabelStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	formErrorStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	detailKeyStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuDropStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	contextMenuHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	noticeInfoStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	noticeWarningStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	noticeErrorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
