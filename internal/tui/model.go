package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gamelife/internal/engine"
	"gamelife/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	tasks    []engine.Task
	order    engine.SortOrder
	selected int

	lastLog string
	err     error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

type failedMsg struct {
	id  int64
	res *engine.FailResult
	err error
}

type sweptMsg struct {
	flipped int
	err     error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	m := boardModel{
		ctx:     ctx,
		svc:     svc,
		order:   engine.SortByPriority,
		lastLog: "Ready.",
	}
	m.tasks = svc.ActiveTasks(m.order)
	return m
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, id)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) failCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.FailTask(m.ctx, id)
		return failedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) sweepCmd() tea.Cmd {
	return func() tea.Msg {
		n, err := m.svc.CheckOverdueTasks(m.ctx)
		return sweptMsg{flipped: n, err: err}
	}
}

func (m *boardModel) reload() {
	m.tasks = m.svc.ActiveTasks(m.order)
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		parts := []string{fmt.Sprintf("Completed #%d: +%d XP", msg.res.TaskID, msg.res.XPEarned)}
		if msg.res.LeveledUp {
			parts = append(parts, ui.BadgeLevelUp+fmt.Sprintf(" → %d", msg.res.Level))
		}
		for _, a := range msg.res.Achievements {
			parts = append(parts, ui.IconTrophy+" "+a.Name)
		}
		if msg.res.RankChanged {
			parts = append(parts, ui.BadgeRankUp+" "+msg.res.NewRank)
		}
		m.lastLog = strings.Join(parts, "  ")
		m.reload()
		return m, nil

	case failedMsg:
		if msg.err != nil {
			m.lastLog = "Fail failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Failed #%d: -%d XP (streak reset)", msg.res.TaskID, msg.res.XPLost)
		if msg.res.LevelDown {
			m.lastLog += "  " + ui.Warn.Render("LEVEL DOWN")
		}
		m.reload()
		return m, nil

	case sweptMsg:
		if msg.err != nil {
			m.lastLog = "Overdue check failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Overdue check: %d task(s) flagged at %s.", msg.flipped, time.Now().Format("15:04:05"))
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.reload()
			m.lastLog = "Refreshed."
			return m, nil
		case "s":
			// Cycle sort order.
			switch m.order {
			case engine.SortByPriority:
				m.order = engine.SortByDueDate
			case engine.SortByDueDate:
				m.order = engine.SortByAdded
			default:
				m.order = engine.SortByPriority
			}
			m.reload()
			m.lastLog = "Sorted by " + string(m.order) + "."
			return m, nil
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if t := m.selectedTask(); t != nil {
				m.lastLog = fmt.Sprintf("Completing #%d…", t.ID)
				return m, m.completeCmd(t.ID)
			}
			return m, nil
		case "f":
			if t := m.selectedTask(); t != nil {
				m.lastLog = fmt.Sprintf("Failing #%d…", t.ID)
				return m, m.failCmd(t.ID)
			}
			return m, nil
		case "o":
			m.lastLog = "Checking overdue tasks…"
			return m, m.sweepCmd()
		}
	}
	return m, nil
}

func (m boardModel) selectedTask() *engine.Task {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := "\n" + m.lastLog

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	p := m.svc.Player()
	u := m.svc.User()
	if p == nil || u == nil {
		return "Game of Life — loading…"
	}
	return fmt.Sprintf("Game of Life | %s | Level %d | %s | XP %d  %s",
		u.Username, p.Level, ui.Gold.Render(p.Rank()), p.XP,
		ui.ProgressBar(p.ProgressToNextLevel(), 24))
}

func (m boardModel) renderSidebar() string {
	p := m.svc.Player()
	if p == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{ui.H2.Render("Stats")}
	lines = append(lines, fmt.Sprintf("- Completed: %d", p.TasksCompleted))
	lines = append(lines, fmt.Sprintf("- Failed: %d", p.TasksFailed))
	lines = append(lines, fmt.Sprintf("- Streak: %d %s", p.CurrentStreak, ui.IconFire))
	lines = append(lines, fmt.Sprintf("- Longest streak: %d", p.LongestStreak))
	lines = append(lines, fmt.Sprintf("- Early finishes: %d", p.TasksCompletedEarly))
	lines = append(lines, fmt.Sprintf("- Critical done: %d", p.CriticalTasksCompleted))
	lines = append(lines, fmt.Sprintf("- Achievements: %d %s", len(p.Achievements), ui.IconTrophy))
	lines = append(lines, "")
	lines = append(lines, ui.H2.Render("Keys"))
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- enter/space: complete")
	lines = append(lines, "- f: fail")
	lines = append(lines, "- o: overdue check")
	lines = append(lines, "- s: cycle sort")
	lines = append(lines, "- r: refresh, q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	out := []string{ui.H2.Render(fmt.Sprintf("Active Tasks (by %s)", m.order))}
	if len(m.tasks) == 0 {
		out = append(out, ui.Muted.Render("(nothing to do — add a task)"))
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		title := fmt.Sprintf("%-30s", truncate(t.Title, 30))
		if i == m.selected {
			cursor = "> "
			title = ui.SelectedRow.Render(title)
		}
		due := "no due date"
		if t.DueDate != nil {
			due = "due " + t.DueDate.Format("2006-01-02")
		}
		out = append(out, fmt.Sprintf("%s#%-3d %s %s  %s  %s",
			cursor, t.ID, title, ui.PriorityText(t.Priority),
			ui.StatusText(t.Status), ui.Muted.Render(due)))
	}
	return strings.Join(out, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
