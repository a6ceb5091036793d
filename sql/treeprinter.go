package sql

import (
	"fmt"
	"strings"
)

// TreePrinter prints a plan tree with a single node and its children, with
// the common text tree structure.
type TreePrinter struct {
	buf      strings.Builder
	nodeDone bool
	done     bool
}

// NewTreePrinter returns a new tree printer.
func NewTreePrinter() *TreePrinter {
	return new(TreePrinter)
}

// WriteNode writes the main node text. It will fail if the node has already
// been written.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) error {
	if p.nodeDone {
		return ErrNodeAlreadyWritten
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteRune('\n')
	p.nodeDone = true
	return nil
}

// WriteChildren writes the children of the node. Each child is indented
// under the node; nested trees are reindented to keep the structure.
func (p *TreePrinter) WriteChildren(children ...string) error {
	if !p.nodeDone {
		return ErrNodeNotWritten
	}
	if p.done {
		return ErrChildrenAlreadyWritten
	}

	p.done = true
	for i, child := range children {
		last := i+1 == len(children)
		lines := strings.Split(strings.TrimRight(child, "\n"), "\n")
		for j, line := range lines {
			if j == 0 {
				if last {
					p.buf.WriteString(" └─ ")
				} else {
					p.buf.WriteString(" ├─ ")
				}
			} else {
				if last {
					p.buf.WriteString("    ")
				} else {
					p.buf.WriteString(" │  ")
				}
			}
			p.buf.WriteString(line)
			p.buf.WriteRune('\n')
		}
	}
	return nil
}

// String returns the rendered tree.
func (p *TreePrinter) String() string {
	return p.buf.String()
}

var (
	// ErrNodeNotWritten is returned when the children are printed before
	// the node.
	ErrNodeNotWritten = fmt.Errorf("treeprinter: a child was written before the node")
	// ErrNodeAlreadyWritten is returned when the node has already been
	// written.
	ErrNodeAlreadyWritten = fmt.Errorf("treeprinter: node already written")
	// ErrChildrenAlreadyWritten is returned when the children have already
	// been written.
	ErrChildrenAlreadyWritten = fmt.Errorf("treeprinter: children already written")
)
