package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	humanize "github.com/dustin/go-humanize"

	"catalogadmin/internal/client"
	"catalogadmin/internal/filter"
	"catalogadmin/internal/listing"
	"catalogadmin/internal/logging"
	"catalogadmin/internal/scrollmark"
	"catalogadmin/internal/types"
)

const (
	// tabs, filter line, toast line and status line
	chromeLines      = 4
	minContentHeight = 3
	wheelStep        = 3
	defaultWidth     = 100
	defaultHeight    = 30
)

type uiMode int

const (
	uiModeList uiMode = iota
	uiModeFilter
	uiModeDetail
	uiModeForm
	uiModeConfirm
)

type Options struct {
	API       CatalogAPI
	Marks     scrollmark.Store
	Logger    logging.Logger
	Resources []types.Resource
	Version   string
	Now       func() time.Time
}

// Model is the dashboard. One resource list is mounted at a time; switching
// tabs tears the old list down and mounts a fresh one driven by that
// resource's filter.
type Model struct {
	api         CatalogAPI
	logger      logging.Logger
	marks       scrollmark.Store
	resources   []types.Resource
	filters     map[string]*filter.Holder
	active      int
	pane        listPane
	unsubscribe func()
	trigger     listing.Trigger
	memory      *scrollmark.Memory
	cursor      int

	viewport   viewport.Model
	loader     spinner.Model
	spinning   bool
	filterBar  *FilterBar
	form       *FormController
	detail     *DetailView
	confirm    *DeletePrompt
	mode       uiMode
	returnMode uiMode

	width  int
	height int

	notice   notice
	requests inflight
	hotkeys  []Hotkey
	version  string
	pending  []tea.Cmd
	now      func() time.Time
}

func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	resources := opts.Resources
	if len(resources) == 0 {
		resources = types.Resources()
	}
	marks := opts.Marks
	if marks == nil {
		marks = scrollmark.NewMemoryStore()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	filters := make(map[string]*filter.Holder, len(resources))
	for _, res := range resources {
		filters[res.Name] = filter.New(filter.EmptyFor(res))
	}
	m := &Model{
		api:       opts.API,
		logger:    logger.With(logging.F("component", "ui")),
		marks:     marks,
		resources: resources,
		filters:   filters,
		viewport:  viewport.New(viewport.WithWidth(defaultWidth), viewport.WithHeight(defaultHeight-chromeLines-1)),
		loader:    spinner.New(spinner.WithSpinner(spinner.Line)),
		filterBar: NewFilterBar(),
		form:      NewFormController(),
		detail:    NewDetailView(),
		confirm:   NewDeletePrompt(),
		hotkeys:   DefaultHotkeys(),
		version:   opts.Version,
		now:       now,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.layout()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.activate(m.active), tea.RequestBackgroundColor)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if len(m.pending) == 0 {
		return m, cmd
	}
	cmds := append([]tea.Cmd{cmd}, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

// queue holds commands produced inside callbacks, such as filter
// subscriptions, until Update returns.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m.observeSentinel()
	case tea.BackgroundColorMsg:
		m.detail.SetDarkBackground(msg.IsDark())
		return nil
	case spinner.TickMsg:
		if m.pane == nil || !m.pane.State().Loading() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		m.renderList()
		return cmd
	case pageLoadedMsg:
		return m.handlePageLoaded(msg)
	case recordLoadedMsg:
		return m.handleRecordLoaded(msg)
	case recordSavedMsg:
		return m.handleRecordSaved(msg)
	case recordDeletedMsg:
		return m.handleRecordDeleted(msg)
	case tea.MouseWheelMsg:
		return m.handleWheel(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return nil
}

// activate mounts the list for resources[index].
func (m *Model) activate(index int) tea.Cmd {
	if len(m.resources) == 0 || m.api == nil {
		return nil
	}
	m.deactivate()
	m.active = clamp(index, 0, len(m.resources)-1)
	res := m.resources[m.active]
	m.pane = newPane(m.api, res)
	if m.pane == nil {
		m.showErrorToast("unsupported resource: " + res.Name)
		return nil
	}
	holder := m.filters[res.Name]
	m.memory = scrollmark.New(m.marks, res.Name)
	m.unsubscribe = holder.Subscribe(func(applied filter.State) {
		m.queue(m.resetList(applied))
	})
	m.cursor = 0
	m.viewport.GotoTop()
	m.logger.Debug("list_mounted", logging.F("resource", res.Name))
	cmd := m.pane.Reset(holder.Query())
	m.renderList()
	return tea.Batch(cmd, m.startSpinner())
}

// deactivate unmounts the current list. Results still in flight for it are
// dropped when they arrive.
func (m *Model) deactivate() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.trigger.Detach()
	if m.pane != nil {
		m.pane.Close()
		m.logger.Debug("list_unmounted", logging.F("resource", m.pane.Resource().Name))
		m.pane = nil
	}
	m.requests.finish(requestRecord)
	m.memory = nil
}

func (m *Model) shutdown() {
	m.deactivate()
	m.requests.cancelAll()
}

// resetList restarts the mounted list for a newly applied filter. The
// scroll position is forgotten: a different filter is a different list.
func (m *Model) resetList(applied filter.State) tea.Cmd {
	if m.pane == nil {
		return nil
	}
	query := applied.Query()
	m.logger.Info("filter_applied",
		logging.F("resource", m.pane.Resource().Name),
		logging.F("query", query.Encode()),
	)
	m.clearToast()
	m.trigger.Detach()
	m.cursor = 0
	m.viewport.GotoTop()
	m.memory.Record(0)
	m.memory.Forget()
	cmd := m.pane.Reset(query)
	m.renderList()
	return tea.Batch(cmd, m.startSpinner())
}

// reloadList refetches from page 1 with the applied filter and keeps the
// remembered scroll position.
func (m *Model) reloadList() tea.Cmd {
	if m.pane == nil {
		return nil
	}
	m.trigger.Detach()
	m.memory.Forget()
	cmd := m.pane.Reload()
	m.renderList()
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) loadMore() tea.Cmd {
	if m.pane == nil {
		return nil
	}
	cmd := m.pane.LoadNext()
	if cmd == nil {
		if m.pane.State() == listing.Exhausted {
			m.showInfoToast("No more " + strings.ToLower(m.pane.Resource().Label))
		}
		m.renderList()
		return nil
	}
	m.renderList()
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.loader.Tick
}

func (m *Model) handlePageLoaded(msg pageLoadedMsg) tea.Cmd {
	outcome := msg.resolve()
	fields := []logging.Field{
		logging.F("resource", msg.resource),
		logging.F("generation", msg.generation),
		logging.F("page", msg.page),
	}
	if outcome.Stale || m.pane == nil {
		m.logger.Debug("page_discarded", fields...)
		return nil
	}
	if outcome.Err != nil {
		m.logger.Warn("page_load_failed", append(fields, logging.Err(outcome.Err))...)
		m.showErrorToast(client.UserMessage(outcome.Err))
	} else {
		m.logger.Debug("page_loaded", append(fields, logging.F("added", outcome.Added))...)
	}
	m.cursor = clamp(m.cursor, 0, max(0, m.pane.Len()-1))
	m.renderList()
	if offset, ok := m.memory.RestoreAfter(m.pane.Len()); ok {
		m.restoreOffset(offset)
	}
	return m.observeSentinel()
}

// restoreOffset scrolls back to a remembered position without recording it,
// so a clamp on a short list does not overwrite the mark.
func (m *Model) restoreOffset(offset int) {
	m.viewport.SetYOffset(offset)
	top := m.viewport.YOffset()
	bottom := top + m.viewport.Height() - 1
	if m.cursor < top || m.cursor > bottom {
		m.cursor = clamp(top, 0, max(0, m.pane.Len()-1))
	}
	m.renderList()
}

// observeSentinel reports whether the last item is on screen. A hidden to
// visible transition asks the list for its next page.
func (m *Model) observeSentinel() tea.Cmd {
	if m.pane == nil || m.pane.Len() == 0 || m.mode == uiModeDetail || m.mode == uiModeForm {
		return nil
	}
	last := m.pane.Len() - 1
	top := m.viewport.YOffset()
	visible := last >= top && last < top+m.viewport.Height()
	cmd := m.pane.ObserveSentinel(&m.trigger, visible)
	if cmd == nil {
		return nil
	}
	m.renderList()
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) handleRecordLoaded(msg recordLoadedMsg) tea.Cmd {
	m.requests.finish(requestRecord)
	if msg.err != nil {
		if canceled(msg.err) {
			return nil
		}
		m.logger.Warn("record_load_failed", logging.F("resource", msg.resource.Name), logging.F("id", msg.id), logging.Err(msg.err))
		if m.detail.IsOpen() && m.detail.ID() == msg.id {
			m.detail.LoadFailed()
		}
		if client.IsNotFound(msg.err) {
			m.showWarningToast("This " + singularLabel(msg.resource) + " no longer exists")
			return nil
		}
		m.showErrorToast(client.UserMessage(msg.err))
		return nil
	}
	if m.detail.IsOpen() && m.detail.ID() == msg.id {
		m.detail.SetRecord(msg.record)
	}
	if m.pane != nil && m.pane.Resource().Name == msg.resource.Name && m.pane.Replace(msg.record) {
		m.renderList()
	}
	return nil
}

func (m *Model) handleRecordSaved(msg recordSavedMsg) tea.Cmd {
	m.requests.finish(requestSave)
	if msg.err != nil {
		if canceled(msg.err) {
			return nil
		}
		m.logger.Warn("record_save_failed", logging.F("resource", msg.resource.Name), logging.Err(msg.err))
		if m.form.IsOpen() {
			var messages []string
			if reqErr := client.AsRequestError(msg.err); reqErr != nil && reqErr.Kind == client.KindApplication {
				messages = reqErr.Errors
			}
			m.form.Rejected(messages)
		}
		m.showErrorToast(client.UserMessage(msg.err))
		return nil
	}
	m.logger.Info("record_saved", logging.F("resource", msg.resource.Name), logging.F("created", msg.created))
	if m.form.IsOpen() && m.form.Submitted() {
		m.form.Close()
		m.mode = m.returnMode
	}
	label := singularLabel(msg.resource)
	if msg.created {
		m.showInfoToast("Created " + label)
	} else {
		m.showInfoToast("Saved " + label)
	}
	if item, ok := msg.record.(listing.Item); ok && m.detail.IsOpen() && m.detail.ID() == item.ItemID() {
		m.detail.SetRecord(msg.record)
	}
	if m.pane == nil || m.pane.Resource().Name != msg.resource.Name {
		return nil
	}
	if msg.created {
		return m.reloadList()
	}
	if m.pane.Replace(msg.record) {
		m.renderList()
	}
	return nil
}

func (m *Model) handleRecordDeleted(msg recordDeletedMsg) tea.Cmd {
	m.requests.finish(requestDelete)
	if msg.err != nil {
		if canceled(msg.err) {
			return nil
		}
		m.logger.Warn("record_delete_failed", logging.F("resource", msg.resource.Name), logging.F("id", msg.id), logging.Err(msg.err))
		m.showErrorToast(client.UserMessage(msg.err))
		return nil
	}
	m.logger.Info("record_deleted", logging.F("resource", msg.resource.Name), logging.F("id", msg.id))
	m.showInfoToast("Deleted " + singularLabel(msg.resource) + " #" + msg.id.String())
	if m.detail.IsOpen() && m.detail.ID() == msg.id {
		m.detail.Close()
		if m.mode == uiModeDetail {
			m.mode = uiModeList
		}
	}
	if m.pane == nil || m.pane.Resource().Name != msg.resource.Name {
		return nil
	}
	// keep the selection on the same row when a row above it goes away
	if idx := m.pane.IndexOf(msg.id); idx >= 0 && idx < m.cursor {
		m.cursor--
	}
	if m.pane.Remove(msg.id) {
		m.cursor = clamp(m.cursor, 0, max(0, m.pane.Len()-1))
		m.renderList()
		return m.observeSentinel()
	}
	return nil
}

func (m *Model) handleWheel(msg tea.MouseWheelMsg) tea.Cmd {
	switch m.mode {
	case uiModeDetail:
		return m.detail.Update(msg)
	case uiModeList, uiModeFilter:
		switch msg.Mouse().Button {
		case tea.MouseWheelDown:
			return m.scroll(wheelStep)
		case tea.MouseWheelUp:
			return m.scroll(-wheelStep)
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case uiModeFilter:
		return m.handleFilterKey(msg)
	case uiModeForm:
		return m.handleFormKey(msg)
	case uiModeConfirm:
		return m.handleConfirmKey(msg)
	case uiModeDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) quit() tea.Cmd {
	m.shutdown()
	return tea.Quit
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q":
		return m.quit()
	case "tab":
		return m.activate((m.active + 1) % len(m.resources))
	case "shift+tab":
		return m.activate((m.active - 1 + len(m.resources)) % len(m.resources))
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		index := int(key[0] - '1')
		if index < len(m.resources) && index != m.active {
			return m.activate(index)
		}
		return nil
	}
	if m.pane == nil {
		return nil
	}
	switch key {
	case "j", "down":
		return m.moveCursor(1)
	case "k", "up":
		return m.moveCursor(-1)
	case "pgdown", "ctrl+d":
		return m.scroll(m.viewport.Height())
	case "pgup", "ctrl+u":
		return m.scroll(-m.viewport.Height())
	case "g", "home":
		return m.moveCursor(-m.cursor)
	case "G", "end":
		return m.moveCursor(m.pane.Len() - 1 - m.cursor)
	case "/":
		res := m.pane.Resource()
		cmd := m.filterBar.Open(filter.FieldsFor(res), m.filters[res.Name])
		if m.filterBar.IsOpen() {
			m.mode = uiModeFilter
		}
		return cmd
	case "x":
		m.filters[m.pane.Resource().Name].Clear()
		return nil
	case "r":
		return m.reloadList()
	case "l":
		return m.loadMore()
	case "enter":
		return m.openDetail()
	case "n":
		return m.openForm(nil, uiModeList)
	case "e":
		record, ok := m.pane.Record(m.cursor)
		if !ok {
			return nil
		}
		return m.openForm(record, uiModeList)
	case "d":
		if id := m.pane.ID(m.cursor); !id.IsZero() {
			m.openDeleteConfirm(m.pane.Resource(), id, uiModeList)
		}
		return nil
	case "y":
		m.copyID(m.pane.Resource(), m.pane.ID(m.cursor))
		return nil
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	action, cmd := m.filterBar.HandleKey(msg)
	if m.pane == nil {
		m.filterBar.Close()
		m.mode = uiModeList
		return cmd
	}
	holder := m.filters[m.pane.Resource().Name]
	switch action {
	case filterActionApply:
		m.filterBar.Close()
		m.mode = uiModeList
		holder.Apply()
	case filterActionClear:
		holder.Clear()
		m.filterBar.Reload()
	case filterActionClose:
		m.filterBar.Close()
		m.mode = uiModeList
	}
	return cmd
}

func (m *Model) handleDetailKey(msg tea.KeyPressMsg) tea.Cmd {
	res := m.detail.res
	switch msg.String() {
	case "esc", "q", "backspace":
		m.requests.finish(requestRecord)
		m.detail.Close()
		m.mode = uiModeList
		return m.observeSentinel()
	case "e":
		return m.openForm(m.detail.Record(), uiModeDetail)
	case "d":
		if id := m.detail.ID(); !id.IsZero() {
			m.openDeleteConfirm(res, id, uiModeDetail)
		}
		return nil
	case "y":
		m.copyID(res, m.detail.ID())
		return nil
	}
	return m.detail.Update(msg)
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	submit, cancel, cmd := m.form.HandleKey(msg)
	switch {
	case cancel:
		m.requests.finish(requestSave)
		m.form.Close()
		m.mode = m.returnMode
		return m.observeSentinel()
	case submit:
		record, err := m.form.Build()
		if err != nil {
			m.showWarningToast("Fix the highlighted fields")
			return nil
		}
		m.form.MarkSubmitted()
		ctx := m.requests.start(requestSave)
		return saveRecordCmd(ctx, m.api, m.form.Resource(), m.form.ID(), record)
	}
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	handled, answer := m.confirm.HandleKey(msg)
	if !handled || answer == promptUndecided {
		return nil
	}
	target := m.closeConfirm()
	if answer != promptDelete || target == nil {
		return nil
	}
	ctx := m.requests.start(requestDelete)
	return deleteRecordCmd(ctx, m.api, target.res, target.id)
}

func (m *Model) closeConfirm() *deleteTarget {
	m.mode = m.returnMode
	return m.confirm.Close()
}

func (m *Model) openDetail() tea.Cmd {
	record, ok := m.pane.Record(m.cursor)
	if !ok {
		return nil
	}
	res := m.pane.Resource()
	m.detail.Open(res, record)
	m.layout()
	m.mode = uiModeDetail
	ctx := m.requests.start(requestRecord)
	return fetchRecordCmd(ctx, m.api, res, m.pane.ID(m.cursor))
}

func (m *Model) openForm(record any, from uiMode) tea.Cmd {
	res := m.pane.Resource()
	if from == uiModeDetail {
		res = m.detail.res
	}
	cmd, err := m.form.Open(res, record)
	if err != nil {
		m.showErrorToast(err.Error())
		return nil
	}
	m.returnMode = from
	m.mode = uiModeForm
	return cmd
}

func (m *Model) openDeleteConfirm(res types.Resource, id types.ID, from uiMode) {
	m.confirm.Open(res, id)
	m.returnMode = from
	m.mode = uiModeConfirm
}

// moveCursor moves the selection and keeps it on screen. Reaching the last
// item also reveals the footer below it.
func (m *Model) moveCursor(delta int) tea.Cmd {
	if m.pane == nil || m.pane.Len() == 0 {
		return nil
	}
	m.cursor = clamp(m.cursor+delta, 0, m.pane.Len()-1)
	top := m.viewport.YOffset()
	height := m.viewport.Height()
	bottom := m.cursor
	if m.cursor == m.pane.Len()-1 {
		bottom++
	}
	switch {
	case m.cursor < top:
		m.viewport.SetYOffset(m.cursor)
	case bottom >= top+height:
		m.viewport.SetYOffset(bottom - height + 1)
	}
	return m.afterScroll()
}

func (m *Model) scroll(delta int) tea.Cmd {
	if m.pane == nil {
		return nil
	}
	if delta > 0 {
		m.viewport.ScrollDown(delta)
	} else {
		m.viewport.ScrollUp(-delta)
	}
	if n := m.pane.Len(); n > 0 {
		top := m.viewport.YOffset()
		m.cursor = clamp(m.cursor, top, top+m.viewport.Height()-1)
		m.cursor = clamp(m.cursor, 0, n-1)
	}
	return m.afterScroll()
}

func (m *Model) afterScroll() tea.Cmd {
	m.memory.Record(m.viewport.YOffset())
	m.renderList()
	return m.observeSentinel()
}

func (m *Model) layout() {
	width := max(1, m.width)
	body := max(minContentHeight, m.height-chromeLines)
	m.viewport.SetWidth(width)
	// one line of the body is the column header
	m.viewport.SetHeight(max(1, body-1))
	m.detail.SetSize(width, body)
	m.renderList()
}

// renderList redraws the rows into the viewport and re-attaches the trigger
// to the current last item.
func (m *Model) renderList() {
	if m.pane == nil {
		m.viewport.SetContent("")
		return
	}
	width := max(1, m.width)
	n := m.pane.Len()
	lines := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		row := m.pane.Row(i, max(1, width-2))
		switch {
		case i == m.cursor:
			lines = append(lines, selectedStyle.Render(fitToWidth("> "+row, width)))
		case m.pane.Inactive(i):
			lines = append(lines, inactiveRowStyle.Render("  "+row))
		default:
			lines = append(lines, rowStyle.Render("  "+row))
		}
	}
	if footer := m.listFooter(); footer != "" {
		lines = append(lines, footer)
	}
	m.viewport.SetContentLines(lines)
	if n == 0 {
		m.trigger.Detach()
		return
	}
	m.trigger.Attach(m.pane.Resource().Name + "/" + m.pane.ID(n-1).String())
}

func (m *Model) listFooter() string {
	label := strings.ToLower(m.pane.Resource().Label)
	switch m.pane.State() {
	case listing.LoadingFirstPage:
		return listFooterStyle.Render("  " + m.loader.View() + " Loading " + label + "…")
	case listing.LoadingMore:
		return listFooterStyle.Render("  " + m.loader.View() + " Loading more…")
	case listing.Exhausted:
		if m.pane.Len() == 0 {
			return listFooterStyle.Render("  No " + label + " match this filter.")
		}
		return listFooterStyle.Render("  End of list · " + humanize.Comma(int64(m.pane.Meta().TotalDataCount)) + " " + label)
	case listing.Error:
		return listErrorStyle.Render("  Failed to load: " + client.UserMessage(m.pane.Err()) + " · press l to retry")
	case listing.Loaded:
		meta := m.pane.Meta()
		return listFooterStyle.Render(fmt.Sprintf("  Scroll for more · page %d of %d", meta.CurrentPage, meta.TotalPages))
	default:
		return ""
	}
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = "catalogadmin"
	if m.pane != nil {
		v.WindowTitle += " · " + m.pane.Resource().Label
	}
	return v
}

func (m *Model) render() string {
	width := max(1, m.width)
	bodyHeight := max(minContentHeight, m.height-chromeLines)
	lines := []string{m.renderTabs(width), m.renderFilterLine(width)}

	var body []string
	switch m.mode {
	case uiModeDetail:
		body = strings.Split(m.detail.View(), "\n")
	case uiModeForm:
		body = strings.Split(m.form.View(width), "\n")
	case uiModeConfirm:
		dialog, row := m.confirm.View(width, bodyHeight)
		body = append(make([]string, row), strings.Split(dialog, "\n")...)
	default:
		if m.pane != nil {
			body = append(body, columnHeaderStyle.Render(fitToWidth("  "+m.pane.Header(max(1, width-2)), width)))
			body = append(body, strings.Split(m.viewport.View(), "\n")...)
		}
	}
	if len(body) > bodyHeight {
		body = body[:bodyHeight]
	}
	for len(body) < bodyHeight {
		body = append(body, "")
	}
	lines = append(lines, body...)
	lines = append(lines, m.notice.render(width, m.now()))
	lines = append(lines, renderStatusLine(width, helpStyle.Render(renderHotkeys(m.hotkeys, activeHotkeyContexts(m.mode))), m.statusText()))
	return strings.Join(lines, "\n")
}

func (m *Model) renderTabs(width int) string {
	tabs := make([]string, 0, len(m.resources))
	for i, res := range m.resources {
		label := fmt.Sprintf("%d %s", i+1, res.Label)
		if i == m.active {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	line := strings.Join(tabs, dividerStyle.Render("│"))
	if m.version != "" {
		line = renderStatusLine(width, line, headerStyle.Render("catalogadmin "+m.version))
	}
	return truncateToWidth(line, width)
}

func (m *Model) renderFilterLine(width int) string {
	if m.pane == nil {
		return ""
	}
	if m.mode == uiModeFilter {
		return m.filterBar.View(width)
	}
	res := m.pane.Resource()
	return filterSummary(filter.FieldsFor(res), m.filters[res.Name], width)
}

func (m *Model) statusText() string {
	if m.pane == nil {
		return ""
	}
	if m.pane.State().Loading() {
		return activityStyle.Render(m.loader.View() + " " + m.pane.State().String())
	}
	if m.requests.running(requestDelete) {
		return activityStyle.Render("deleting…")
	}
	meta := m.pane.Meta()
	text := fmt.Sprintf("%s of %s · page %d/%d",
		humanize.Comma(int64(m.pane.Len())),
		humanize.Comma(int64(meta.TotalDataCount)),
		meta.CurrentPage, meta.TotalPages)
	return statusStyle.Render(text)
}

func singularLabel(res types.Resource) string {
	return strings.ReplaceAll(res.Singular, "_", " ")
}
