// Package memory implements object memory (§4.C) and the constraint
// checker invoked during frame acceptance (§4.D): identity allocation,
// object snapshots, stable/mutable frames, and the undo/redo history
// that ties accepted frames into one linear timeline.
package memory

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"designstore/internal/logging"
	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// Memory is the root object store: one identity space, one snapshot
// table, the stable/mutable frame tables, and the undo/redo history
// anchored at current_frame_id (§4.C "Memory"). It is bound to a single
// *metamodel.Metamodel for the lifetime of the store; per §5 it assumes a
// single-writer, single-goroutine caller and holds no internal locks.
type Memory struct {
	metamodel *metamodel.Metamodel
	alloc     *idAllocator

	snapshots     map[SnapshotID]*ObjectSnapshot
	stableFrames  map[FrameID]*StableFrame
	mutableFrames map[FrameID]*MutableFrame

	currentFrameID *FrameID
	undoable       []FrameID
	redoable       []FrameID

	maxUndoDepth int
	maxRedoDepth int

	log *zap.Logger
}

// Option configures a Memory at construction time.
type Option func(*Memory)

// WithStructuredLogger attaches a *zap.Logger that receives one structured
// event per Accept/Undo/Redo, tagged with a google/uuid correlation ID.
func WithStructuredLogger(l *zap.Logger) Option {
	return func(m *Memory) { m.log = l }
}

// WithHistoryLimits bounds how many frames the undo/redo history retains;
// zero means unbounded, matching internal/config.MemoryConfig.
func WithHistoryLimits(maxUndo, maxRedo int) Option {
	return func(m *Memory) { m.maxUndoDepth, m.maxRedoDepth = maxUndo, maxRedo }
}

// New constructs an empty Memory bound to mm.
func New(mm *metamodel.Metamodel, opts ...Option) *Memory {
	m := &Memory{
		metamodel:     mm,
		alloc:         newIDAllocator(),
		snapshots:     make(map[SnapshotID]*ObjectSnapshot),
		stableFrames:  make(map[FrameID]*StableFrame),
		mutableFrames: make(map[FrameID]*MutableFrame),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) event(op string, fields ...zap.Field) {
	if m.log == nil {
		return
	}
	corrID := uuid.NewString()
	m.log.Info(op, append([]zap.Field{zap.String("correlation_id", corrID)}, fields...)...)
	logging.Get(logging.CategoryMemory).Debug("%s [%s]", op, corrID)
}

// AllocateID reserves required (if non-nil) or mints a fresh ID.
func (m *Memory) AllocateID(required *int64) int64 {
	return m.alloc.allocate(required)
}

// newSnapshot builds a snapshot: validates structure against the type's
// structural kind, fills in attribute defaults, and registers it.
func (m *Memory) newSnapshot(objectID ObjectID, typ metamodel.ObjectType, structure Structure, attributes map[string]value.Variant, state SnapshotState) (*ObjectSnapshot, error) {
	if structure.Kind != typ.StructuralKind {
		return nil, fmt.Errorf("memory: type %q is %s, cannot create a %s structure", typ.Name, typ.StructuralKind, structure.Kind)
	}

	descs, err := typ.Attributes()
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]value.Variant, len(descs))
	for k, v := range attributes {
		attrs[k] = v
	}
	for _, d := range descs {
		if _, has := attrs[d.Name]; !has && d.Default != nil {
			attrs[d.Name] = *d.Default
		}
	}

	snap := &ObjectSnapshot{
		ObjectID:   objectID,
		SnapshotID: SnapshotID(m.alloc.allocate(nil)),
		Type:       typ,
		Structure:  structure,
		Attributes: attrs,
		State:      state,
	}
	m.registerSnapshot(snap)
	return snap, nil
}

func (m *Memory) registerSnapshot(s *ObjectSnapshot) {
	m.snapshots[s.SnapshotID] = s
}

// CreateSnapshot allocates a fresh object ID and snapshots it as a new
// instance of typ (§4.C "create_snapshot").
func (m *Memory) CreateSnapshot(typ metamodel.ObjectType, structure Structure, attributes map[string]value.Variant) (*ObjectSnapshot, error) {
	objectID := ObjectID(m.alloc.allocate(nil))
	return m.newSnapshot(objectID, typ, structure, attributes, Transient)
}

// Snapshot looks up a snapshot by ID from the global table.
func (m *Memory) Snapshot(id SnapshotID) (*ObjectSnapshot, bool) {
	s, ok := m.snapshots[id]
	return s, ok
}

// DeriveSnapshot copies an existing snapshot under a fresh snapshot ID,
// leaving the original untouched (§4.C "derive_snapshot"). Deriving from
// an unknown snapshot ID is a programming error (§7 "unknown-snapshot")
// and panics.
func (m *Memory) DeriveSnapshot(origin SnapshotID) *ObjectSnapshot {
	src, ok := m.snapshots[origin]
	if !ok {
		panic(fmt.Sprintf("memory: unknown snapshot %d", origin))
	}
	derived := src.clone()
	derived.SnapshotID = SnapshotID(m.alloc.allocate(nil))
	derived.State = Transient
	m.registerSnapshot(derived)
	return derived
}

// CreateFrame allocates a fresh, empty mutable frame.
func (m *Memory) CreateFrame() *MutableFrame {
	id := FrameID(m.alloc.allocate(nil))
	f := &MutableFrame{
		id:      id,
		mem:     m,
		entries: make(map[ObjectID]*frameEntry),
		removed: make(map[ObjectID]struct{}),
		state:   Open,
	}
	m.mutableFrames[id] = f
	return f
}

// DeriveFrame opens a new mutable frame borrowing every snapshot of the
// given stable frame (or of the current frame, if originalFrameID is
// nil; empty if there is no current frame yet) (§4.C "derive_frame").
// originalFrameID, if given, must name a frame Accept has already
// promoted to stable; referencing anything else is a programming error
// (§7 "unknown-frame") and panics.
func (m *Memory) DeriveFrame(originalFrameID *FrameID) *MutableFrame {
	var src *StableFrame
	if originalFrameID != nil {
		s, ok := m.stableFrames[*originalFrameID]
		if !ok {
			panic(fmt.Sprintf("memory: unknown frame %d", *originalFrameID))
		}
		src = s
	} else if m.currentFrameID != nil {
		src = m.stableFrames[*m.currentFrameID]
	}

	f := m.CreateFrame()
	if src != nil {
		for _, snap := range src.snapshots {
			f.Insert(snap, false)
		}
	}
	return f
}

// Frame resolves a frame ID to whichever table currently holds it.
func (m *Memory) Frame(id FrameID) (Frame, bool) {
	if f, ok := m.stableFrames[id]; ok {
		return f, true
	}
	if f, ok := m.mutableFrames[id]; ok {
		return f, true
	}
	return nil, false
}

// ContainsFrame reports whether id names a frame this Memory knows about.
func (m *Memory) ContainsFrame(id FrameID) bool {
	_, ok := m.Frame(id)
	return ok
}

// CurrentFrame returns the frame at the head of the undo/redo timeline,
// or nil if nothing has been accepted yet.
func (m *Memory) CurrentFrame() *StableFrame {
	if m.currentFrameID == nil {
		return nil
	}
	return m.stableFrames[*m.currentFrameID]
}

// CanUndo reports whether there is a frame to undo to.
func (m *Memory) CanUndo() bool { return len(m.undoable) > 0 }

// CanRedo reports whether there is a frame to redo to.
func (m *Memory) CanRedo() bool { return len(m.redoable) > 0 }

// Accept validates frame — referential integrity, then type errors, then
// constraints — and, only if all three pass, atomically promotes it to a
// StableFrame (§4.C "accept", §4.D). On failure nothing changes: frame
// stays open and mutable, and *FrameValidationError reports every problem
// found, not just the first. When appendToHistory is true the previously
// current frame (if any) is pushed onto the undo history and the redo
// history is cleared; when it is false both histories are left as they
// are.
func (m *Memory) Accept(frame *MutableFrame, appendToHistory bool) (*StableFrame, error) {
	if frame.mem != m {
		panic("memory: frame does not belong to this Memory")
	}
	if frame.state != Open {
		panic("memory: frame is not open")
	}

	brokenRefs := checkReferentialIntegrity(frame)
	typeErrors := checkTypeErrors(frame)
	violations := CheckConstraints(m.metamodel, frame)

	if len(brokenRefs) > 0 || len(typeErrors) > 0 || len(violations) > 0 {
		return nil, &FrameValidationError{
			BrokenReferences: brokenRefs,
			TypeErrors:       typeErrors,
			Violations:       violations,
		}
	}

	snapshots := make(map[ObjectID]*ObjectSnapshot, len(frame.entries))
	for id, e := range frame.entries {
		e.snapshot.State = Validated
		snapshots[id] = e.snapshot
	}
	stable := &StableFrame{id: frame.id, snapshots: snapshots}
	m.stableFrames[frame.id] = stable
	delete(m.mutableFrames, frame.id)
	frame.state = FrameValidated

	if appendToHistory {
		if m.currentFrameID != nil {
			m.undoable = append(m.undoable, *m.currentFrameID)
			m.trimUndo()
		}
		m.redoable = nil
		id := frame.id
		m.currentFrameID = &id
	}

	m.event("accept", zap.Int64("frame_id", int64(frame.id)), zap.Int("objects", len(snapshots)))
	return stable, nil
}

// Discard abandons an open mutable frame without validating or promoting
// it. The frame ID is not reused.
func (m *Memory) Discard(frame *MutableFrame) {
	if frame.state != Open {
		panic("memory: frame is not open")
	}
	delete(m.mutableFrames, frame.id)
	m.event("discard", zap.Int64("frame_id", int64(frame.id)))
}

// RemoveFrame removes a stable frame that is no longer reachable from the
// undo/redo history (snapshot garbage collection is explicitly out of
// scope; this only removes the frame's own bookkeeping entry).
func (m *Memory) RemoveFrame(id FrameID) {
	delete(m.stableFrames, id)
}

// Undo moves the timeline back to frame to, which must currently appear
// in the undo history (§4.C "undo", §8 scenario "undo/redo trail").
// Everything between to and the current frame, plus the current frame
// itself, moves to the front of the redo history in chronological order.
func (m *Memory) Undo(to FrameID) {
	i := indexOf(m.undoable, to)
	if i < 0 {
		panic(fmt.Sprintf("memory: frame %d is not in the undo history", to))
	}
	if m.currentFrameID == nil {
		panic("memory: no current frame to undo from")
	}

	moved := append(append([]FrameID{}, m.undoable[i+1:]...), *m.currentFrameID)
	m.redoable = append(moved, m.redoable...)
	if m.maxRedoDepth > 0 && len(m.redoable) > m.maxRedoDepth {
		m.redoable = m.redoable[:m.maxRedoDepth]
	}
	m.undoable = append([]FrameID{}, m.undoable[:i]...)
	m.currentFrameID = &to

	m.event("undo", zap.Int64("to_frame_id", int64(to)))
}

// Redo moves the timeline forward to frame to, which must currently
// appear in the redo history. Everything between the current frame and
// to, plus the current frame itself, moves onto the end of the undo
// history in chronological order.
func (m *Memory) Redo(to FrameID) {
	i := indexOf(m.redoable, to)
	if i < 0 {
		panic(fmt.Sprintf("memory: frame %d is not in the redo history", to))
	}
	if m.currentFrameID == nil {
		panic("memory: no current frame to redo from")
	}

	passed := m.redoable[:i]
	m.undoable = append(append(m.undoable, *m.currentFrameID), passed...)
	m.trimUndo()
	m.redoable = append([]FrameID{}, m.redoable[i+1:]...)
	m.currentFrameID = &to

	m.event("redo", zap.Int64("to_frame_id", int64(to)))
}

func (m *Memory) trimUndo() {
	if m.maxUndoDepth > 0 && len(m.undoable) > m.maxUndoDepth {
		m.undoable = m.undoable[len(m.undoable)-m.maxUndoDepth:]
	}
}

func indexOf(frames []FrameID, target FrameID) int {
	for i, f := range frames {
		if f == target {
			return i
		}
	}
	return -1
}
