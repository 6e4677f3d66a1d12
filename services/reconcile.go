package services

import "nokanban.pro/database"

// Edge says which side of the target sibling a dragged item lands on.
type Edge string

const (
	EdgeBefore Edge = "before"
	EdgeAfter  Edge = "after"
)

// DropGesture describes a completed drag-and-drop: what was dragged, where
// it came from, and where it was released. TargetSiblingID may be empty,
// meaning the item was dropped on empty space at the end of the list.
type DropGesture struct {
	DraggedID       string
	SourceParentID  string
	TargetParentID  string
	TargetSiblingID string
	Edge            Edge
}

// DropResolution is the storage-level translation of a gesture. For a
// same-parent reorder, Updates holds the position reassignments for every
// sibling whose rank changed. For a cross-parent move, Position is the slot
// the dragged item takes in the target parent.
type DropResolution struct {
	SameParent bool
	Position   int
	Updates    []database.PositionUpdate
}

// ResolveDrop turns a gesture into position assignments against the current
// orderings. source and target are the sibling ids of the source and target
// parents in position order; when the parents are the same, both include
// the dragged item. A stale TargetSiblingID (no longer in target) falls
// back to end-of-list rather than failing.
func ResolveDrop(g DropGesture, source, target []string) DropResolution {
	same := g.SourceParentID == g.TargetParentID

	position := len(target)
	if idx := indexOf(target, g.TargetSiblingID); g.TargetSiblingID != "" && idx >= 0 {
		position = idx
		if g.Edge == EdgeAfter {
			position = idx + 1
		}
		if same {
			// The dragged item still occupies its old slot in target, so
			// indices past it are off by one once it is lifted out.
			if cur := indexOf(target, g.DraggedID); cur >= 0 && cur < position {
				position--
			}
		}
	}

	if !same {
		if position > len(target) {
			position = len(target)
		}
		return DropResolution{Position: position}
	}

	// Same-parent reorder: lift the dragged item out, reinsert at the
	// computed slot, and re-enumerate. Only changed ranks are emitted; the
	// result is still a full contiguous 0..N-1 permutation.
	rest := make([]string, 0, len(target))
	for _, id := range target {
		if id != g.DraggedID {
			rest = append(rest, id)
		}
	}
	if position > len(rest) {
		position = len(rest)
	}
	if position < 0 {
		position = 0
	}

	order := make([]string, 0, len(target))
	order = append(order, rest[:position]...)
	order = append(order, g.DraggedID)
	order = append(order, rest[position:]...)

	old := make(map[string]int, len(target))
	for i, id := range target {
		old[id] = i
	}

	var updates []database.PositionUpdate
	for i, id := range order {
		if old[id] != i {
			updates = append(updates, database.PositionUpdate{ID: id, Position: i})
		}
	}

	return DropResolution{SameParent: true, Position: position, Updates: updates}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
