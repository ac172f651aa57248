package model

import "sort"

// Hierarchy is a navigable index over a category set. It is built once from
// a flat slice and consulted for every parent/child lookup instead of
// chasing back-references on the entities themselves.
type Hierarchy struct {
	byID     map[int64]*Category
	children map[int64][]*Category
	parents  []*Category
	subs     []*Category
}

// NewHierarchy builds the index. The input slice is not retained; categories
// are copied so later mutation of the source does not corrupt the index.
func NewHierarchy(categories []Category) *Hierarchy {
	h := &Hierarchy{
		byID:     make(map[int64]*Category, len(categories)),
		children: make(map[int64][]*Category),
	}

	for i := range categories {
		cat := categories[i]
		c := &cat
		h.byID[c.ID] = c
		if c.IsParent() {
			h.parents = append(h.parents, c)
		} else {
			h.subs = append(h.subs, c)
			h.children[*c.ParentID] = append(h.children[*c.ParentID], c)
		}
	}

	sortByName(h.parents)
	sortByName(h.subs)
	for id := range h.children {
		sortByName(h.children[id])
	}

	return h
}

// ByID returns the category with the given id, or nil.
func (h *Hierarchy) ByID(id int64) *Category {
	return h.byID[id]
}

// Parents returns the parent categories of the given type, sorted ascending
// by name.
func (h *Hierarchy) Parents(t TransactionType) []*Category {
	var out []*Category
	for _, p := range h.parents {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// Children returns the sub-categories of a parent, sorted ascending by name.
func (h *Hierarchy) Children(parentID int64) []*Category {
	return h.children[parentID]
}

// SubCategories returns all sub-categories sorted ascending by name.
func (h *Hierarchy) SubCategories() []*Category {
	return h.subs
}

// MostFrequent returns up to limit sub-categories ordered by descending
// usage count, ties broken ascending by name. Usage counts come from the
// store (count of referencing transactions per category id); categories
// absent from the map count as zero.
func (h *Hierarchy) MostFrequent(usage map[int64]int, limit int) []*Category {
	ranked := make([]*Category, len(h.subs))
	copy(ranked, h.subs)

	sort.SliceStable(ranked, func(i, j int) bool {
		ui, uj := usage[ranked[i].ID], usage[ranked[j].ID]
		if ui == uj {
			return ranked[i].Name < ranked[j].Name
		}
		return ui > uj
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func sortByName(cats []*Category) {
	sort.Slice(cats, func(i, j int) bool {
		return cats[i].Name < cats[j].Name
	})
}
