package model

// Category is a closed set of catalog tags. Products always carry one of
// the values below; arbitrary strings are rejected at every boundary.
type Category string

const (
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTools      Category = "TOOLS"
)

// Categories returns every valid category tag.
func Categories() []Category {
	return []Category{
		CategoryUnknown,
		CategoryCloths,
		CategoryFood,
		CategoryHousewares,
		CategoryAutomotive,
		CategoryTools,
	}
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps a tag name to its Category value.
// Returns a DataValidationError for anything outside the closed set.
func ParseCategory(value string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == value {
			return c, nil
		}
	}
	return "", NewDataValidationError("invalid attribute: %s", value)
}
