package archive

import (
	"fmt"
	"io"

	"github.com/shurcooL/htmlg"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	indexTitle = "MozReview patch archive for revision %d"
	latestText = "latest.patch"
)

// RenderIndex writes the index page for a revision with diffCount diffs.
// The page links to the parent directory, to the newest diff as
// "latest.patch", and to every diff from newest to oldest.
func RenderIndex(w io.Writer, revisionID, diffCount int) error {
	title := fmt.Sprintf(indexTitle, revisionID)

	items := []*html.Node{listLink("..", "..")}
	if diffCount > 0 {
		items = append(items, listLink(PatchName(revisionID, diffCount), latestText))
	}
	for diffID := diffCount; diffID >= 1; diffID-- {
		name := PatchName(revisionID, diffID)
		items = append(items, listLink(name, name))
	}

	doc := element(atom.Html,
		element(atom.Head,
			element(atom.Title, htmlg.Text(title)),
		),
		element(atom.Body,
			htmlg.H1(htmlg.Text(title)),
			htmlg.UL(items...),
		),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := html.Render(w, doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// listLink returns <li><a href="{{.href}}">{{.text}}</a></li>.
func listLink(href, text string) *html.Node {
	return htmlg.LI(htmlg.A(text, href))
}

// element builds the document skeleton nodes htmlg has no helper for.
func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	htmlg.AppendChildren(n, children...)
	return n
}
