package catalog

// Category classifies a catalog service. The set is extensible; new
// categories only need a constant here.
type Category string

const (
	CategoryRemoteDesktop     Category = "remote-desktop"
	CategoryProductivitySuite Category = "productivity-suite"
	CategoryAccounting        Category = "accounting"
)

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the category is part of the catalog taxonomy.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRemoteDesktop, CategoryProductivitySuite, CategoryAccounting:
		return true
	}
	return false
}

// Exclusive reports whether only one service of this category may be
// selected in a single order. Remote desktop services are mutually
// exclusive; every other category allows multiple selections.
func (c Category) Exclusive() bool {
	return c == CategoryRemoteDesktop
}
