package ast

// TransformKind names a pipeline operation by its PRQL keyword.
type TransformKind string

// TransformKind constants.
const (
	TransformFrom      TransformKind = "from"
	TransformSelect    TransformKind = "select"
	TransformFilter    TransformKind = "filter"
	TransformDerive    TransformKind = "derive"
	TransformAggregate TransformKind = "aggregate"
	TransformSort      TransformKind = "sort"
	TransformTake      TransformKind = "take"
	TransformJoin      TransformKind = "join"
	TransformGroup     TransformKind = "group"
	TransformUnique    TransformKind = "unique"
)

// Transform is one operation of a relational pipeline.
// It is a sub-set of Item: every Transform is also an Item.
type Transform interface {
	Item
	TransformKind() TransformKind
}

// From reads a table.
type From struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// Select keeps only the given columns.
type Select struct {
	Assigns []*Node `json:"assigns"`
}

// Filter keeps rows matching Expr.
type Filter struct {
	Expr *Node `json:"expr"`
}

// Derive adds computed columns.
type Derive struct {
	Assigns []*Node `json:"assigns"`
}

// Aggregate folds rows, optionally per group.
type Aggregate struct {
	Assigns []*Node `json:"assigns"`
	By      []*Node `json:"by"`
}

// Sort orders rows.
type Sort struct {
	By []ColumnSort `json:"by"`
}

// Take keeps a range of rows.
type Take struct {
	Range Range        `json:"range"`
	By    []*Node      `json:"by"`
	Sort  []ColumnSort `json:"sort"`
}

// JoinSide is the kind of join.
type JoinSide string

// JoinSide constants.
const (
	JoinInner JoinSide = "Inner"
	JoinLeft  JoinSide = "Left"
	JoinRight JoinSide = "Right"
	JoinFull  JoinSide = "Full"
)

// Join combines rows with another relation.
type Join struct {
	Side   JoinSide `json:"side"`
	With   *Node    `json:"with"`
	Filter *Node    `json:"filter"`
}

// Group applies a nested pipeline to each group.
type Group struct {
	By       []*Node `json:"by"`
	Pipeline *Node   `json:"pipeline"`
}

// Unique removes duplicate rows.
type Unique struct{}

func (*From) itemNode()      {}
func (*Select) itemNode()    {}
func (*Filter) itemNode()    {}
func (*Derive) itemNode()    {}
func (*Aggregate) itemNode() {}
func (*Sort) itemNode()      {}
func (*Take) itemNode()      {}
func (*Join) itemNode()      {}
func (*Group) itemNode()     {}
func (*Unique) itemNode()    {}

// TransformKind implements Transform.
func (*From) TransformKind() TransformKind { return TransformFrom }

// TransformKind implements Transform.
func (*Select) TransformKind() TransformKind { return TransformSelect }

// TransformKind implements Transform.
func (*Filter) TransformKind() TransformKind { return TransformFilter }

// TransformKind implements Transform.
func (*Derive) TransformKind() TransformKind { return TransformDerive }

// TransformKind implements Transform.
func (*Aggregate) TransformKind() TransformKind { return TransformAggregate }

// TransformKind implements Transform.
func (*Sort) TransformKind() TransformKind { return TransformSort }

// TransformKind implements Transform.
func (*Take) TransformKind() TransformKind { return TransformTake }

// TransformKind implements Transform.
func (*Join) TransformKind() TransformKind { return TransformJoin }

// TransformKind implements Transform.
func (*Group) TransformKind() TransformKind { return TransformGroup }

// TransformKind implements Transform.
func (*Unique) TransformKind() TransformKind { return TransformUnique }
