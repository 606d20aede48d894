package ast

// Span is a byte range in the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Node owns a single Item plus identity and position metadata.
type Node struct {
	ID   *int  // assigned by name resolution; nil until then
	Span *Span // nil when the node was built programmatically
	Item Item
}

// NewNode returns a node owning item, with no id or span.
func NewNode(item Item) *Node {
	return &Node{Item: item}
}

// WithID sets the node id and returns the node.
func (n *Node) WithID(id int) *Node {
	n.ID = &id
	return n
}

// WithSpan sets the node span and returns the node.
func (n *Node) WithSpan(start, end int) *Node {
	n.Span = &Span{Start: start, End: end}
	return n
}

// Nodes wraps each item in a new Node.
func Nodes(items ...Item) []*Node {
	nodes := make([]*Node, len(items))
	for i, item := range items {
		nodes[i] = NewNode(item)
	}
	return nodes
}
