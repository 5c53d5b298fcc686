package render

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/takak2166/worklist/internal/models"
)

const (
	// DefaultContainerID identifies the element holding the work list
	DefaultContainerID = "work-list"

	// DefaultHeading is the list title ("work list")
	DefaultHeading = "작업 목록"
)

// Options controls the generated container
type Options struct {
	ContainerID string
	Heading     string
}

func (o Options) withDefaults() Options {
	if o.ContainerID == "" {
		o.ContainerID = DefaultContainerID
	}
	if o.Heading == "" {
		o.Heading = DefaultHeading
	}
	return o
}

// Render rebuilds the work list container of doc from entries and returns it.
// An existing container is emptied and reused; otherwise a new, detached <div>
// is created. Attaching a new container is left to the caller (see Attach).
func Render(doc *html.Node, entries []models.Entry, opts Options) *html.Node {
	opts = opts.withDefaults()

	container := GetElementByID(doc, opts.ContainerID)
	if container == nil {
		container = newElement(atom.Div)
	}
	setAttr(container, "id", opts.ContainerID)

	for c := container.FirstChild; c != nil; c = container.FirstChild {
		container.RemoveChild(c)
	}

	header := newElement(atom.H2)
	header.AppendChild(newText(opts.Heading))
	container.AppendChild(header)

	ul := newElement(atom.Ul)
	container.AppendChild(ul)

	for _, entry := range entries {
		a := newElement(atom.A)
		setAttr(a, "href", entry.Source)
		a.AppendChild(newText(entry.DisplayName))

		li := newElement(atom.Li)
		li.AppendChild(a)
		ul.AppendChild(li)
	}

	return container
}

func newElement(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
}

func newText(text string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: text,
	}
}
