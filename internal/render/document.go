package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBody is returned when a document has no <body> element
var ErrNoBody = errors.New("document has no body element")

// Load parses an HTML document. Missing <html>, <head> and <body> elements are
// synthesized by the parser.
func Load(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// GetElementByID returns the first element under n, in document order, whose
// id attribute equals id.
func GetElementByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && getAttr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := GetElementByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Body returns the document's <body> element
func Body(doc *html.Node) *html.Node {
	return findElement(doc, atom.Body)
}

// Attach places container into doc. A container that is already part of the
// tree keeps its position; a detached one becomes the last child of <body>.
func Attach(doc, container *html.Node) error {
	if container.Parent != nil {
		return nil
	}
	body := Body(doc)
	if body == nil {
		return ErrNoBody
	}
	body.AppendChild(container)
	return nil
}

// SerializeBody writes the inner markup of the document's <body>. Everything
// outside the body, including <head>, is not written.
func SerializeBody(w io.Writer, doc *html.Node) error {
	body := Body(doc)
	if body == nil {
		return ErrNoBody
	}

	bw := bufio.NewWriter(w)
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(bw, c); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return bw.Flush()
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
