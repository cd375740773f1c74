package templates

import "slices"

// Groups that always stay adjacent at the top of their region, in this
// order. A group lands in the region of its first declared member.
var groups = [][]string{
	{"deviceID", "deviceName"},
	{"rec", "cloudRec", "cloudRecord"},
}

// Arrange splits items into left and right regions, moving each group to
// the top of its region. Everything else keeps declaration order.
func Arrange(items []Item) (left, right []Item) {
	byID := make(map[string]Item, len(items))
	for _, it := range items {
		byID[it.IconID] = it
	}

	grouped := make(map[string]bool)
	top := map[string][]Item{PartLeft: nil, PartRight: nil}
	for _, group := range groups {
		part := ""
		for _, it := range items {
			if slices.Contains(group, it.IconID) {
				part = partOf(it)
				break
			}
		}
		if part == "" {
			continue
		}
		for _, id := range group {
			if it, ok := byID[id]; ok {
				it.Part = part
				top[part] = append(top[part], it)
				grouped[id] = true
			}
		}
	}

	left = append(left, top[PartLeft]...)
	right = append(right, top[PartRight]...)
	for _, it := range items {
		if grouped[it.IconID] {
			continue
		}
		it.Part = partOf(it)
		if it.Part == PartRight {
			right = append(right, it)
		} else {
			left = append(left, it)
		}
	}
	return left, right
}

func partOf(it Item) string {
	if it.Part == PartRight {
		return PartRight
	}
	return PartLeft
}
