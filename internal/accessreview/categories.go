package accessreview

import (
	"fmt"
	"strings"
)

// Category is one of the fixed accessibility tags a review can rate.
type Category int

const (
	CategoryRamp Category = iota
	CategoryWaitingArea
	CategorySeating
	CategoryMenu
	CategoryServiceAnimals
	CategoryFood
	CategoryStaffDecorum

	categoriesCount
)

var categoryNames = [categoriesCount]string{
	CategoryRamp:           "RAMP",
	CategoryWaitingArea:    "WAITING_AREA",
	CategorySeating:        "SEATING",
	CategoryMenu:           "MENU",
	CategoryServiceAnimals: "SERVICE_ANIMALS",
	CategoryFood:           "FOOD",
	CategoryStaffDecorum:   "STAFF_DECORUM",
}

// Categories returns every category in declaration order.
func Categories() []Category {
	cs := make([]Category, 0, categoriesCount)
	for c := Category(0); c < categoriesCount; c++ {
		cs = append(cs, c)
	}
	return cs
}

func (c Category) valid() bool {
	return c >= 0 && c < categoriesCount
}

func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText lets categories be used as JSON object keys.
func (c Category) MarshalText() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	resolved, ok := ResolveCategory(string(text))
	if !ok {
		return fmt.Errorf("unknown category `%s`", text)
	}
	*c = resolved
	return nil
}

// ResolveCategory matches text against the canonical category names ignoring case.
func ResolveCategory(text string) (Category, bool) {
	for c := Category(0); c < categoriesCount; c++ {
		if strings.EqualFold(text, categoryNames[c]) {
			return c, true
		}
	}
	return 0, false
}

// ResolveCategories resolves every name it can and silently drops the rest.
func ResolveCategories(names ...string) []Category {
	cs := make([]Category, 0, len(names))
	for _, name := range names {
		if c, ok := ResolveCategory(name); ok {
			cs = append(cs, c)
		}
	}
	return cs
}
