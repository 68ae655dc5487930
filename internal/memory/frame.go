package memory

import (
	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// Frame is implemented by both StableFrame and MutableFrame, letting the
// graph view and the constraint checker work over either without caring
// which.
type Frame interface {
	ID() FrameID
	Snapshot(id ObjectID) (*ObjectSnapshot, bool)
	ObjectIDs() []ObjectID
	Candidates() []metamodel.Candidate
}

// StableFrame is a validated, immutable frame in the undo/redo history
// (§4.C "StableFrame"). Its snapshots are all in the Validated state and
// are shared freely; nothing ever copies or mutates them.
type StableFrame struct {
	id        FrameID
	snapshots map[ObjectID]*ObjectSnapshot
}

func (f *StableFrame) ID() FrameID { return f.id }

func (f *StableFrame) Snapshot(id ObjectID) (*ObjectSnapshot, bool) {
	s, ok := f.snapshots[id]
	return s, ok
}

func (f *StableFrame) ObjectIDs() []ObjectID {
	ids := make([]ObjectID, 0, len(f.snapshots))
	for id := range f.snapshots {
		ids = append(ids, id)
	}
	return ids
}

func (f *StableFrame) Candidates() []metamodel.Candidate {
	out := make([]metamodel.Candidate, 0, len(f.snapshots))
	for _, s := range f.snapshots {
		out = append(out, s.Candidate())
	}
	return out
}

// FrameState tracks a mutable frame's lifecycle (§4.C "open / validated").
type FrameState int

const (
	Open FrameState = iota
	FrameValidated
)

type frameEntry struct {
	snapshot *ObjectSnapshot
	owned    bool
}

// MutableFrame is a working copy under construction: a set of borrowed
// (shared, read-only) and owned (private, writable) snapshots, plus a
// record of objects removed relative to the frame it was derived from
// (§4.C "MutableFrame").
type MutableFrame struct {
	id      FrameID
	mem     *Memory
	entries map[ObjectID]*frameEntry
	removed map[ObjectID]struct{}
	state   FrameState
}

func (f *MutableFrame) ID() FrameID { return f.id }

func (f *MutableFrame) Snapshot(id ObjectID) (*ObjectSnapshot, bool) {
	e, ok := f.entries[id]
	if !ok {
		return nil, false
	}
	return e.snapshot, true
}

func (f *MutableFrame) ObjectIDs() []ObjectID {
	ids := make([]ObjectID, 0, len(f.entries))
	for id := range f.entries {
		ids = append(ids, id)
	}
	return ids
}

func (f *MutableFrame) Candidates() []metamodel.Candidate {
	out := make([]metamodel.Candidate, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.snapshot.Candidate())
	}
	return out
}

// Insert adds a snapshot to the frame, borrowed unless owned is true
// (§4.C "insert(snapshot, owned)"). Every violated precondition is a
// programming error and panics: the frame must be open; snapshot must
// not be Uninitialized; neither its object ID nor its snapshot ID may
// already be present in the frame; an owned entry must be Transient
// (still mutable), and a borrowed one must be Validated.
func (f *MutableFrame) Insert(snapshot *ObjectSnapshot, owned bool) {
	f.requireOpen()
	if snapshot.State == Uninitialized {
		panic("memory: cannot insert an uninitialized snapshot")
	}
	if _, exists := f.entries[snapshot.ObjectID]; exists {
		panic("memory: frame already contains that object id")
	}
	for _, e := range f.entries {
		if e.snapshot.SnapshotID == snapshot.SnapshotID {
			panic("memory: frame already contains that snapshot id")
		}
	}
	if owned && snapshot.State != Transient {
		panic("memory: an owned insert requires a transient (mutable) snapshot")
	}
	if !owned && snapshot.State != Validated {
		panic("memory: a borrowed insert requires a validated snapshot")
	}
	delete(f.removed, snapshot.ObjectID)
	f.entries[snapshot.ObjectID] = &frameEntry{snapshot: snapshot, owned: owned}
}

// Create allocates a fresh object, snapshots it with the given
// attributes, and inserts it into the frame as owned (§4.C "create =
// allocate + create_snapshot + insert owned").
func (f *MutableFrame) Create(typ metamodel.ObjectType, structure Structure, attributes map[string]value.Variant) (ObjectID, error) {
	f.requireOpen()
	objectID := ObjectID(f.mem.alloc.allocate(nil))
	snap, err := f.mem.newSnapshot(objectID, typ, structure, attributes, Transient)
	if err != nil {
		return 0, err
	}
	f.Insert(snap, true)
	return objectID, nil
}

// MutableObject returns a writable snapshot for id, copying a borrowed
// entry on first write (copy-on-write, §4.C). Returns an error if id is
// not present in the frame (including objects already removed from it).
func (f *MutableFrame) MutableObject(id ObjectID) (*ObjectSnapshot, error) {
	f.requireOpen()
	e, ok := f.entries[id]
	if !ok {
		return nil, &UnknownObjectError{ObjectID: id}
	}
	if e.owned {
		return e.snapshot, nil
	}
	copySnap := e.snapshot.clone()
	copySnap.SnapshotID = SnapshotID(f.mem.alloc.allocate(nil))
	copySnap.State = Transient
	f.mem.registerSnapshot(copySnap)
	e.snapshot = copySnap
	e.owned = true
	return copySnap, nil
}

// RemoveCascading removes id and everything transitively hanging off it:
// its hierarchy children and any structural component (edge) that
// references it as origin or target (§4.C "remove_cascading"). Returns
// the full set of removed object IDs.
func (f *MutableFrame) RemoveCascading(id ObjectID) (map[ObjectID]struct{}, error) {
	f.requireOpen()
	if _, ok := f.entries[id]; !ok {
		return nil, &UnknownObjectError{ObjectID: id}
	}

	toRemove := map[ObjectID]struct{}{}
	queue := []ObjectID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, already := toRemove[cur]; already {
			continue
		}
		toRemove[cur] = struct{}{}

		e := f.entries[cur]
		if e == nil {
			continue
		}
		for child := range e.snapshot.Children {
			queue = append(queue, child)
		}
		for otherID, other := range f.entries {
			if _, done := toRemove[otherID]; done {
				continue
			}
			s := other.snapshot
			if s.Structure.Kind == metamodel.Edge && (s.Structure.Origin == cur || s.Structure.Target == cur) {
				queue = append(queue, otherID)
			}
		}
	}

	for removedID := range toRemove {
		delete(f.entries, removedID)
		f.removed[removedID] = struct{}{}
	}
	return toRemove, nil
}

// AddChild adds child as a hierarchy child of parent, setting child's
// parent pointer. Both objects must already be present in the frame.
func (f *MutableFrame) AddChild(parentID, childID ObjectID) error {
	parent, err := f.MutableObject(parentID)
	if err != nil {
		return err
	}
	child, err := f.MutableObject(childID)
	if err != nil {
		return err
	}
	if parent.Children == nil {
		parent.Children = map[ObjectID]struct{}{}
	}
	parent.Children[childID] = struct{}{}
	pid := parentID
	child.Parent = &pid
	return nil
}

// RemoveChild removes child from parent's hierarchy children and clears
// child's parent pointer if it pointed at parent.
func (f *MutableFrame) RemoveChild(parentID, childID ObjectID) error {
	parent, err := f.MutableObject(parentID)
	if err != nil {
		return err
	}
	child, err := f.MutableObject(childID)
	if err != nil {
		return err
	}
	delete(parent.Children, childID)
	if child.Parent != nil && *child.Parent == parentID {
		child.Parent = nil
	}
	return nil
}

// SetParent reparents childID under parentID, detaching it from any
// previous parent first.
func (f *MutableFrame) SetParent(childID, parentID ObjectID) error {
	if err := f.RemoveFromParent(childID); err != nil {
		return err
	}
	return f.AddChild(parentID, childID)
}

// RemoveFromParent detaches id from its current parent, if any.
func (f *MutableFrame) RemoveFromParent(id ObjectID) error {
	child, err := f.MutableObject(id)
	if err != nil {
		return err
	}
	if child.Parent == nil {
		return nil
	}
	parentID := *child.Parent
	parent, err := f.MutableObject(parentID)
	if err != nil {
		return err
	}
	delete(parent.Children, id)
	child.Parent = nil
	return nil
}

func (f *MutableFrame) requireOpen() {
	if f.state != Open {
		panic("memory: frame is not open")
	}
}
