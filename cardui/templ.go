package cardui

import (
	"context"
	"io"

	"github.com/a-h/templ"
	cmp "maragu.dev/gomponents"
)

// Hosts that render with templ can wrap the card in their layouts, and
// supply templ components for the link-rendering contract, through these
// adapters.

// templToNode wraps a templ.Component to satisfy gomponents.Node.
type templToNode struct {
	component templ.Component
}

// Render delegates to the templ component. Gomponents' Render carries no
// context, so the bridge uses context.Background().
func (a *templToNode) Render(w io.Writer) error {
	return a.component.Render(context.Background(), w)
}

// FromTempl converts a templ.Component into a gomponents.Node so it can sit
// inside the card tree.
func FromTempl(component templ.Component) cmp.Node {
	return &templToNode{component: component}
}

// nodeToTempl wraps a gomponents.Node to satisfy templ.Component.
type nodeToTempl struct {
	node cmp.Node
}

func (a *nodeToTempl) Render(_ context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// ToTempl converts a gomponents.Node (e.g. the rendered card) into a
// templ.Component for hosts composing templ layouts.
func ToTempl(node cmp.Node) templ.Component {
	return &nodeToTempl{node: node}
}

// TemplLink adapts a templ link component factory to the LinkRenderer
// contract.
func TemplLink(render func(href string, children templ.Component) templ.Component) LinkRenderer {
	return func(href string, children ...cmp.Node) cmp.Node {
		return FromTempl(render(href, ToTempl(cmp.Group(children))))
	}
}
