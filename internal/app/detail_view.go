package app

import (
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	humanize "github.com/dustin/go-humanize"

	"catalogadmin/internal/app/sanitizer"
	"catalogadmin/internal/listing"
	"catalogadmin/internal/types"
)

// DetailView shows a single record with its description rendered as markdown.
type DetailView struct {
	res      types.Resource
	record   any
	viewport viewport.Model
	width    int
	open     bool
	loading  bool
	markdown *descriptionRenderer
}

func NewDetailView() *DetailView {
	return &DetailView{viewport: viewport.New(), markdown: newDescriptionRenderer()}
}

func (d *DetailView) IsOpen() bool {
	return d != nil && d.open
}

func (d *DetailView) Open(res types.Resource, record any) {
	d.res = res
	d.record = record
	d.open = true
	d.loading = true
	d.viewport.GotoTop()
	d.refresh()
}

func (d *DetailView) Close() {
	d.open = false
	d.record = nil
	d.loading = false
}

func (d *DetailView) Record() any { return d.record }

func (d *DetailView) ID() types.ID {
	if item, ok := d.record.(listing.Item); ok {
		return item.ItemID()
	}
	return ""
}

// SetRecord swaps in a fresher copy, e.g. once the backend answered.
func (d *DetailView) SetRecord(record any) {
	if !d.open || record == nil {
		return
	}
	d.record = record
	d.loading = false
	d.refresh()
}

func (d *DetailView) LoadFailed() {
	d.loading = false
	d.refresh()
}

func (d *DetailView) SetSize(width, height int) {
	d.viewport.SetHeight(max(1, height))
	if width != d.width {
		d.width = width
		d.viewport.SetWidth(max(1, width))
		d.refresh()
	}
}

// SetDarkBackground re-renders descriptions when the palette changes.
func (d *DetailView) SetDarkBackground(dark bool) {
	if d.markdown.SetDark(dark) {
		d.refresh()
	}
}

func (d *DetailView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *DetailView) View() string {
	if !d.open {
		return ""
	}
	return d.viewport.View()
}

func (d *DetailView) refresh() {
	if !d.open {
		return
	}
	d.viewport.SetContent(renderRecordDetail(d.res, d.record, max(20, d.width), d.loading, d.markdown))
}

type detailField struct {
	label string
	value string
}

func renderRecordDetail(res types.Resource, record any, width int, loading bool, markdown *descriptionRenderer) string {
	var title, description string
	var fields []detailField
	var created, updated *time.Time
	switch r := record.(type) {
	case *types.Collection:
		title = r.Name
		description = r.Description
		created, updated = r.CreatedAt, r.UpdatedAt
		fields = []detailField{
			{"ID", r.ID.String()},
			{"Status", activeLabel(r.Active)},
			{"Position", strconv.Itoa(r.Position)},
		}
	case *types.Category:
		title = r.Name
		created, updated = r.CreatedAt, r.UpdatedAt
		fields = []detailField{
			{"ID", r.ID.String()},
			{"Collection", r.CollectionID.String()},
			{"Status", activeLabel(r.Active)},
			{"Position", strconv.Itoa(r.Position)},
		}
	case *types.Product:
		title = r.Name
		description = r.Description
		created, updated = r.CreatedAt, r.UpdatedAt
		fields = []detailField{
			{"ID", r.ID.String()},
			{"SKU", r.SKU},
			{"Price", formatPrice(r)},
			{"Category", r.CategoryID.String()},
			{"Status", activeLabel(r.Active)},
		}
	case *types.VendorSKU:
		title = r.Vendor + " " + r.VendorSKU
		created, updated = r.CreatedAt, r.UpdatedAt
		fields = []detailField{
			{"ID", r.ID.String()},
			{"Vendor", r.Vendor},
			{"Vendor SKU", r.VendorSKU},
			{"Product", r.ProductID.String()},
			{"Product SKU", r.ProductSKU},
			{"Status", activeLabel(r.Active)},
		}
	default:
		return listFooterStyle.Render("Nothing selected.")
	}
	fields = append(fields,
		detailField{"Created", detailTime(created)},
		detailField{"Updated", detailTime(updated)},
	)

	heading := strings.ReplaceAll(res.Singular, "_", " ") + ": " + sanitizer.Cell(title)
	lines := []string{headerStyle.Render(truncateToWidth(heading, width)), ""}
	for _, field := range fields {
		value := sanitizer.Cell(field.value)
		if value == "" {
			value = "-"
		}
		lines = append(lines, detailKeyStyle.Render(padToWidth(field.label, 13))+truncateToWidth(value, max(1, width-13)))
	}
	if description = strings.TrimSpace(sanitizer.Text(description)); description != "" {
		lines = append(lines, "", markdown.Render(description, width))
	}
	if loading {
		lines = append(lines, "", listFooterStyle.Render("Refreshing…"))
	}
	return strings.Join(lines, "\n")
}

func detailTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04") + " (" + humanize.Time(*t) + ")"
}
