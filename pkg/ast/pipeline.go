package ast

// Pipeline is a chain of stages applied in sequence.
type Pipeline struct {
	Nodes []*Node `json:"nodes"`
}

func (*Pipeline) itemNode() {}

// NewPipeline returns a pipeline over the given stages.
func NewPipeline(nodes ...*Node) *Pipeline {
	return &Pipeline{Nodes: nodes}
}

// IntoTransforms reinterprets every stage as a Transform.
// Stages are checked in order; the first stage that is not a Transform
// stops the conversion with a *NotATransformError. The pipeline itself is
// left untouched.
func (p *Pipeline) IntoTransforms() ([]Transform, error) {
	transforms := make([]Transform, 0, len(p.Nodes))
	for i, node := range p.Nodes {
		var item Item
		if node != nil {
			item = node.Item
		}
		t, ok := item.(Transform)
		if !ok {
			return nil, &NotATransformError{Index: i, Item: item}
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// AsTransforms returns the stages as Transforms only if all of them are;
// otherwise it returns false and no partial result.
func (p *Pipeline) AsTransforms() ([]Transform, bool) {
	transforms, err := p.IntoTransforms()
	if err != nil {
		return nil, false
	}
	return transforms, true
}
