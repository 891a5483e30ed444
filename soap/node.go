package soap

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Node is one element of a loosely typed response tree. The service's
// responses vary in shape (collections may be absent, hold one record or
// many), so the transport hands callers this generic tree and leaves
// interpretation to them.
type Node struct {
	Name  string
	Text  string
	Nodes []*Node
}

func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name.Local

	var text strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Nodes = append(n.Nodes, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
}

// Child returns the first direct child with the given local name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Nodes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns every direct child with the given local name. A lone record
// and a one-element sequence come out identically.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Nodes {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text content of the named child and whether the
// child element was present at all. An absent element and an empty one are
// different answers.
func (n *Node) ChildText(name string) (string, bool) {
	c := n.Child(name)
	if c == nil {
		return "", false
	}
	return c.Text, true
}

// Int64 parses the node's text content as a base-10 integer.
func (n *Node) Int64() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(n.Text), 10, 64)
}
