package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"jsplit/internal/domain"
)

// Viewer displays a plan interactively
type Viewer interface {
	View(plan *domain.Plan) error
}

var _ Viewer = (*PlanViewer)(nil)

// PlanViewer displays a plan's groups in an interactive TUI
type PlanViewer struct{}

// NewPlanViewer creates a new PlanViewer
func NewPlanViewer() *PlanViewer {
	return &PlanViewer{}
}

// View opens the browser: groups on the left, the selected group's
// categories on the right.
func (pv *PlanViewer) View(plan *domain.Plan) error {
	if len(plan.Groups) == 0 {
		color.Yellow("Plan has no groups")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, group := range plan.Groups {
		list.AddItem(pv.groupItemText(i, group, plan.Meta.TargetSeconds), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(pv.formatHeader(plan))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(plan.Groups) {
			statsView.SetText(pv.formatGroupStats(plan, index))
			detailsView.SetText(pv.formatGroupDetails(plan.Groups[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (pv *PlanViewer) groupItemText(index int, group domain.Group, target float64) string {
	marker := ""
	if len(group) == 1 && group[0].Duration > target {
		marker = " [red]▲[white]"
	}
	return fmt.Sprintf("[yellow]%d.[white] %s (%ss)%s", index+1, group.Keys(), seconds(group.Duration()), marker)
}

func (pv *PlanViewer) formatHeader(plan *domain.Plan) string {
	return fmt.Sprintf(" Split plan %s | %d groups (%d requested) | total %ss, target %ss | ↑↓ navigate, → details, q to exit ",
		plan.Meta.ID, len(plan.Groups), plan.Meta.RequestedGroups,
		seconds(plan.Meta.TotalSeconds), seconds(plan.Meta.TargetSeconds))
}

func (pv *PlanViewer) formatGroupStats(plan *domain.Plan, index int) string {
	group := plan.Groups[index]
	share := 0.0
	if plan.Meta.TotalSeconds > 0 {
		share = group.Duration() / plan.Meta.TotalSeconds * 100
	}
	return fmt.Sprintf("[cyan]group:[white] [yellow]%d[white]  [cyan]keys:[white] [yellow]%s[white]  [cyan]share:[white] %.1f%%\n",
		index+1, group.Keys(), share)
}

func (pv *PlanViewer) formatGroupDetails(group domain.Group) string {
	var builder strings.Builder
	longest := 0.0
	for _, c := range group {
		if c.Duration > longest {
			longest = c.Duration
		}
	}
	for _, c := range group {
		width := 0
		if longest > 0 {
			width = int(c.Duration / longest * 40)
		}
		fmt.Fprintf(&builder, "[yellow]%c[white] %8.3fs [darkcyan]%s[white]\n", c.Key, c.Duration, strings.Repeat("█", width))
	}
	fmt.Fprintf(&builder, "\n[cyan]total:[white] %.3fs\n", group.Duration())
	return builder.String()
}
