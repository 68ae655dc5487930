// Package designstore is the public surface of the module: a thin
// re-export shim over the internal value, metamodel, memory, graph, and
// expr packages, so an external tool can depend on one import path
// without reaching into internal/.
package designstore

import (
	"designstore/internal/expr"
	"designstore/internal/graph"
	"designstore/internal/memory"
	"designstore/internal/metamodel"
	"designstore/internal/value"
)

// Value model (component A).
type (
	Kind             = value.Kind
	Variant          = value.Variant
	Point            = value.Point
	ConversionError  = value.ConversionError
	NotComparableErr = value.NotComparableError
)

const (
	KindInt    = value.KindInt
	KindDouble = value.KindDouble
	KindBool   = value.KindBool
	KindString = value.KindString
	KindPoint  = value.KindPoint
)

var (
	Int         = value.Int
	Double      = value.Double
	Bool        = value.Bool
	String      = value.String
	PointOf     = value.PointOf
	IntArray    = value.IntArray
	DoubleArray = value.DoubleArray
	BoolArray   = value.BoolArray
	StringArray = value.StringArray
	PointArray  = value.PointArray
)

// Metamodel (component B).
type (
	StructuralKind        = metamodel.StructuralKind
	AttributeDescriptor   = metamodel.AttributeDescriptor
	Trait                 = metamodel.Trait
	ObjectType            = metamodel.ObjectType
	BuiltinVariable       = metamodel.BuiltinVariable
	Metamodel             = metamodel.Metamodel
	Predicate             = metamodel.Predicate
	Requirement           = metamodel.Requirement
	Constraint            = metamodel.Constraint
	Candidate             = metamodel.Candidate
	DuplicateAttributeErr = metamodel.DuplicateAttributeError
)

const (
	Unstructured = metamodel.Unstructured
	Node         = metamodel.Node
	Edge         = metamodel.Edge
)

var (
	NewMetamodel        = metamodel.New
	Any                 = metamodel.Any
	IsType              = metamodel.IsType
	HasTrait            = metamodel.HasTrait
	And                 = metamodel.And
	Or                  = metamodel.Or
	Not                 = metamodel.Not
	RejectAll           = metamodel.RejectAll
	AcceptAll           = metamodel.AcceptAll
	UniqueAttribute     = metamodel.UniqueAttribute
	UnidirectionalEdge  = metamodel.UnidirectionalEdge
	AcyclicGraph        = metamodel.AcyclicGraph
	LoadTraitsYAML      = metamodel.LoadTraitsYAML
	LoadObjectTypesYAML = metamodel.LoadObjectTypesYAML
)

// Object memory and the constraint checker (components C and D).
type (
	ObjectID             = memory.ObjectID
	SnapshotID           = memory.SnapshotID
	FrameID              = memory.FrameID
	Structure            = memory.Structure
	ObjectSnapshot       = memory.ObjectSnapshot
	StableFrame          = memory.StableFrame
	MutableFrame         = memory.MutableFrame
	Frame                = memory.Frame
	Memory               = memory.Memory
	FrameValidationError = memory.FrameValidationError
	ConstraintViolation  = memory.ConstraintViolation
	ForeignRecord        = memory.ForeignRecord
	ForeignStructure     = memory.ForeignStructure
)

var (
	NewMemory             = memory.New
	WithStructuredLogger  = memory.WithStructuredLogger
	WithHistoryLimits     = memory.WithHistoryLimits
	UnstructuredStructure = memory.UnstructuredStructure
	NodeStructure         = memory.NodeStructure
	EdgeStructure         = memory.EdgeStructure
)

// Graph view (component E).
type (
	GraphView     = graph.View
	Neighborhood  = graph.Neighborhood
	GraphCycle    = graph.GraphCycle
	HoodSelector  = graph.HoodSelector
	HoodDirection = graph.HoodDirection
)

const (
	Outgoing = graph.Outgoing
	Incoming = graph.Incoming
)

var NewGraphView = graph.New

// Expression language (component F).
type (
	Token             = expr.Token
	ParseResult       = expr.ParseResult
	Expr              = expr.Expr
	Bound             = expr.Bound
	Scope             = expr.Scope
	Environment       = expr.Environment
	FunctionSignature = expr.FunctionSignature
	ArgumentDesc      = expr.ArgumentDesc
	UnionType         = expr.UnionType
	SyntaxError       = expr.SyntaxError
	BindError         = expr.BindError
	EvalError         = expr.EvalError
)

var (
	Lex    = expr.Lex
	Parse  = expr.Parse
	ToAST  = expr.ToAST
	Bind   = expr.Bind
	Eval   = expr.Eval
	KindOf = expr.KindOf
	AnyOf  = expr.AnyOf
)
