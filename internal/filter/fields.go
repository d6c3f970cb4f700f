package filter

import "catalogadmin/internal/types"

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldChoice
)

const (
	KeyStartsWith   = "starts_with"
	KeyActive       = "active"
	KeyCollectionID = "collection_id"
	KeyCategoryID   = "category_id"
	KeyVendor       = "vendor"
)

const (
	ActiveAny      = ""
	ActiveOnly     = "active"
	ActiveInactive = "inactive"
)

// Field describes one control in a resource's filter bar.
type Field struct {
	Key     string
	Label   string
	Kind    FieldKind
	Options []string
}

var activeField = Field{
	Key:     KeyActive,
	Label:   "Status",
	Kind:    FieldChoice,
	Options: []string{ActiveAny, ActiveOnly, ActiveInactive},
}

// FieldsFor returns the filter controls offered for res.
func FieldsFor(res types.Resource) []Field {
	switch res.Name {
	case types.ResourceCollections.Name:
		return []Field{
			{Key: KeyStartsWith, Label: "Name starts with"},
			activeField,
		}
	case types.ResourceCategories.Name:
		return []Field{
			{Key: KeyStartsWith, Label: "Name starts with"},
			activeField,
			{Key: KeyCollectionID, Label: "Collection ID"},
		}
	case types.ResourceProducts.Name:
		return []Field{
			{Key: KeyStartsWith, Label: "Name starts with"},
			activeField,
			{Key: KeyCategoryID, Label: "Category ID"},
		}
	case types.ResourceVendorSKUs.Name:
		return []Field{
			{Key: KeyVendor, Label: "Vendor"},
			{Key: KeyStartsWith, Label: "Vendor SKU starts with"},
		}
	default:
		return nil
	}
}

// EmptyFor returns the cleared filter state for res.
func EmptyFor(res types.Resource) State {
	state := State{}
	for _, field := range FieldsFor(res) {
		state[field.Key] = ""
	}
	return state
}

// NextOption cycles a choice field to the option after current.
func (f Field) NextOption(current string) string {
	if len(f.Options) == 0 {
		return current
	}
	for i, option := range f.Options {
		if option == current {
			return f.Options[(i+1)%len(f.Options)]
		}
	}
	return f.Options[0]
}
