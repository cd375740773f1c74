package layout

// Item is one control as seen by the resolver.
type Item struct {
	ID     string
	Size   int
	Pinned bool
}

// Result partitions a bar's items.
type Result struct {
	Visible    []string
	Overflowed []string
	// Trigger reports whether the More trigger is rendered.
	Trigger bool
	// Used is the space consumed by visible items and the trigger.
	Used int
}

// Equal reports whether two results render identically.
func (r Result) Equal(o Result) bool {
	return r.Trigger == o.Trigger && r.Used == o.Used &&
		equalStrings(r.Visible, o.Visible) && equalStrings(r.Overflowed, o.Overflowed)
}

// Resolve partitions items, given in priority order, against available.
//
// When everything fits there is no trigger. Otherwise the trigger slot and
// every pinned item are reserved first, and the remaining items are taken
// greedily: the first one that no longer fits, and every item after it,
// overflow. If nothing at all would be visible, the first item stays visible
// anyway; a bar narrower than its widest control degrades rather than goes
// blank.
func Resolve(available int, items []Item, trigger int) Result {
	if len(items) == 0 {
		return Result{}
	}

	total := 0
	for _, it := range items {
		total += it.Size
	}
	if total <= available {
		res := Result{Used: total}
		for _, it := range items {
			res.Visible = append(res.Visible, it.ID)
		}
		return res
	}

	budget := available - trigger
	for _, it := range items {
		if it.Pinned {
			budget -= it.Size
		}
	}

	keep := make([]bool, len(items))
	cum, cut := 0, false
	for i, it := range items {
		if it.Pinned {
			keep[i] = true
			continue
		}
		if !cut && cum+it.Size <= budget {
			cum += it.Size
			keep[i] = true
			continue
		}
		cut = true
	}

	anyVisible := false
	for _, k := range keep {
		anyVisible = anyVisible || k
	}
	if !anyVisible {
		keep[0] = true
	}

	var res Result
	for i, it := range items {
		if keep[i] {
			res.Visible = append(res.Visible, it.ID)
			res.Used += it.Size
		} else {
			res.Overflowed = append(res.Overflowed, it.ID)
		}
	}
	if len(res.Overflowed) > 0 {
		res.Trigger = true
		res.Used += trigger
	}
	return res
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
