package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"catalogadmin/internal/app/sanitizer"
	"catalogadmin/internal/listing"
	"catalogadmin/internal/types"
)

// listPane is the type-erased face of a resource list, so the model can
// switch tabs without knowing the record type.
type listPane interface {
	Resource() types.Resource
	Reset(query url.Values) tea.Cmd
	Reload() tea.Cmd
	LoadNext() tea.Cmd
	ObserveSentinel(t *listing.Trigger, visible bool) tea.Cmd
	State() listing.State
	Meta() types.PageMeta
	Err() error
	Len() int
	Generation() uint64
	Record(i int) (any, bool)
	ID(i int) types.ID
	IndexOf(id types.ID) int
	Header(width int) string
	Row(i, width int) string
	Inactive(i int) bool
	Replace(record any) bool
	Remove(id types.ID) bool
	Close()
}

type column[T any] struct {
	title string
	// width zero takes whatever the fixed columns leave over.
	width int
	right bool
	value func(T) string
}

type listFunc[T any] func(ctx context.Context, page int, query url.Values) ([]T, types.PageMeta, error)

type resourceList[T listing.Item] struct {
	res     types.Resource
	ctrl    *listing.Controller[T]
	columns []column[T]
	active  func(T) bool
}

func newResourceList[T listing.Item](res types.Resource, list listFunc[T], columns []column[T], active func(T) bool) *resourceList[T] {
	return &resourceList[T]{
		res:     res,
		ctrl:    listing.NewController(pageFetcher(list)),
		columns: columns,
		active:  active,
	}
}

func pageFetcher[T listing.Item](list listFunc[T]) listing.Fetcher[T] {
	return func(ctx context.Context, page int, query url.Values) (listing.Page[T], error) {
		items, meta, err := list(ctx, page, query)
		if err != nil {
			return listing.Page[T]{}, err
		}
		return listing.Page[T]{Items: items, Meta: meta}, nil
	}
}

func (l *resourceList[T]) Resource() types.Resource { return l.res }

func (l *resourceList[T]) Reset(query url.Values) tea.Cmd {
	return l.fetchCmd(l.ctrl.Reset(query))
}

func (l *resourceList[T]) Reload() tea.Cmd {
	return l.fetchCmd(l.ctrl.Reload())
}

func (l *resourceList[T]) LoadNext() tea.Cmd {
	req, ok := l.ctrl.LoadNext()
	if !ok {
		return nil
	}
	return l.fetchCmd(req)
}

func (l *resourceList[T]) ObserveSentinel(t *listing.Trigger, visible bool) tea.Cmd {
	req, ok := listing.ObserveSentinel(t, l.ctrl, visible)
	if !ok {
		return nil
	}
	return l.fetchCmd(req)
}

// fetchCmd runs the request off the event loop. No timeout is applied here:
// a superseded request is canceled through its generation instead.
func (l *resourceList[T]) fetchCmd(req listing.Request) tea.Cmd {
	ctrl := l.ctrl
	name := l.res.Name
	return func() tea.Msg {
		result := ctrl.Fetch(context.Background(), req)
		return pageLoadedMsg{
			resource:   name,
			generation: req.Generation,
			page:       req.Page,
			resolve:    func() listing.Outcome { return ctrl.Resolve(result) },
		}
	}
}

func (l *resourceList[T]) State() listing.State { return l.ctrl.State() }

func (l *resourceList[T]) Meta() types.PageMeta { return l.ctrl.Meta() }

func (l *resourceList[T]) Err() error { return l.ctrl.Err() }

func (l *resourceList[T]) Len() int { return l.ctrl.Len() }

func (l *resourceList[T]) Generation() uint64 { return l.ctrl.Generation() }

func (l *resourceList[T]) Record(i int) (any, bool) {
	item, ok := l.ctrl.At(i)
	if !ok {
		return nil, false
	}
	return item, true
}

func (l *resourceList[T]) ID(i int) types.ID {
	item, ok := l.ctrl.At(i)
	if !ok {
		return ""
	}
	return item.ItemID()
}

func (l *resourceList[T]) IndexOf(id types.ID) int {
	for i, item := range l.ctrl.Items() {
		if item.ItemID() == id {
			return i
		}
	}
	return -1
}

func (l *resourceList[T]) Inactive(i int) bool {
	item, ok := l.ctrl.At(i)
	return ok && l.active != nil && !l.active(item)
}

func (l *resourceList[T]) Replace(record any) bool {
	item, ok := record.(T)
	if !ok {
		return false
	}
	return l.ctrl.Replace(item)
}

func (l *resourceList[T]) Remove(id types.ID) bool { return l.ctrl.Remove(id) }

func (l *resourceList[T]) Close() { l.ctrl.Close() }

func (l *resourceList[T]) Header(width int) string {
	widths := l.widths(width)
	cells := make([]string, len(l.columns))
	for i, col := range l.columns {
		cells[i] = fitCell(col.title, widths[i], col.right)
	}
	return strings.Join(cells, " ")
}

func (l *resourceList[T]) Row(i, width int) string {
	item, ok := l.ctrl.At(i)
	if !ok {
		return ""
	}
	widths := l.widths(width)
	cells := make([]string, len(l.columns))
	for c, col := range l.columns {
		cells[c] = fitCell(sanitizer.Cell(col.value(item)), widths[c], col.right)
	}
	return strings.Join(cells, " ")
}

func (l *resourceList[T]) widths(total int) []int {
	widths := make([]int, len(l.columns))
	fixed, flex := 0, 0
	for i, col := range l.columns {
		widths[i] = col.width
		fixed += col.width
		if col.width == 0 {
			flex++
		}
	}
	fixed += len(l.columns) - 1
	if flex == 0 {
		return widths
	}
	share := max(minFlexColumnWidth, (total-fixed)/flex)
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = share
		}
	}
	return widths
}

const minFlexColumnWidth = 8

func fitCell(text string, width int, right bool) string {
	if width <= 0 {
		return ""
	}
	text = runewidth.Truncate(text, width, "…")
	if right {
		return runewidth.FillLeft(text, width)
	}
	return runewidth.FillRight(text, width)
}

// newPane builds the list for res on top of api.
func newPane(api CatalogAPI, res types.Resource) listPane {
	switch res.Name {
	case types.ResourceCollections.Name:
		return newResourceList(res, api.ListCollections, []column[*types.Collection]{
			{title: "ID", width: 6, right: true, value: func(c *types.Collection) string { return c.ID.String() }},
			{title: "Name", value: func(c *types.Collection) string { return c.Name }},
			{title: "Pos", width: 4, right: true, value: func(c *types.Collection) string { return humanize.Comma(int64(c.Position)) }},
			{title: "Status", width: 8, value: func(c *types.Collection) string { return activeLabel(c.Active) }},
			{title: "Updated", width: 14, value: func(c *types.Collection) string { return relativeTime(c.UpdatedAt) }},
		}, func(c *types.Collection) bool { return c.Active })
	case types.ResourceCategories.Name:
		return newResourceList(res, api.ListCategories, []column[*types.Category]{
			{title: "ID", width: 6, right: true, value: func(c *types.Category) string { return c.ID.String() }},
			{title: "Name", value: func(c *types.Category) string { return c.Name }},
			{title: "Collection", width: 10, right: true, value: func(c *types.Category) string { return c.CollectionID.String() }},
			{title: "Status", width: 8, value: func(c *types.Category) string { return activeLabel(c.Active) }},
			{title: "Updated", width: 14, value: func(c *types.Category) string { return relativeTime(c.UpdatedAt) }},
		}, func(c *types.Category) bool { return c.Active })
	case types.ResourceProducts.Name:
		return newResourceList(res, api.ListProducts, []column[*types.Product]{
			{title: "ID", width: 6, right: true, value: func(p *types.Product) string { return p.ID.String() }},
			{title: "SKU", width: 16, value: func(p *types.Product) string { return p.SKU }},
			{title: "Name", value: func(p *types.Product) string { return p.Name }},
			{title: "Price", width: 12, right: true, value: formatPrice},
			{title: "Status", width: 8, value: func(p *types.Product) string { return activeLabel(p.Active) }},
			{title: "Updated", width: 14, value: func(p *types.Product) string { return relativeTime(p.UpdatedAt) }},
		}, func(p *types.Product) bool { return p.Active })
	case types.ResourceVendorSKUs.Name:
		return newResourceList(res, api.ListVendorSKUs, []column[*types.VendorSKU]{
			{title: "ID", width: 6, right: true, value: func(v *types.VendorSKU) string { return v.ID.String() }},
			{title: "Vendor", width: 12, value: func(v *types.VendorSKU) string { return v.Vendor }},
			{title: "Vendor SKU", value: func(v *types.VendorSKU) string { return v.VendorSKU }},
			{title: "Product", width: 8, right: true, value: func(v *types.VendorSKU) string { return v.ProductID.String() }},
			{title: "Product SKU", width: 16, value: func(v *types.VendorSKU) string { return v.ProductSKU }},
			{title: "Status", width: 8, value: func(v *types.VendorSKU) string { return activeLabel(v.Active) }},
		}, func(v *types.VendorSKU) bool { return v.Active })
	default:
		return nil
	}
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func formatPrice(p *types.Product) string {
	price := strings.TrimSpace(p.Price.String())
	if value, err := p.Price.Float(); err == nil {
		price = humanize.FormatFloat("#,###.##", value)
	}
	if p.Currency == "" {
		return price
	}
	return price + " " + p.Currency
}

func relativeTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return humanize.Time(*t)
}
