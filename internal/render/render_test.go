package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"regularfa/internal/automaton"
)

func sample() *automaton.Automaton {
	return automaton.New(
		[]automaton.State{"S", "A", automaton.Final},
		map[automaton.Key]automaton.State{
			{From: "S", Symbol: 'a'}: "A",
			{From: "S", Symbol: 'b'}: "A",
			{From: "A", Symbol: 'a'}: "A",
			{From: "A", Symbol: 'c'}: automaton.Final,
		},
		"S",
		[]automaton.State{automaton.Final},
	)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// groups collects the <g> elements of the parsed page by class
func groups(t *testing.T, page []byte) map[string][]*html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		t.Fatalf("rendered page does not parse: %v", err)
	}

	found := make(map[string][]*html.Node)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "g" {
			found[attr(n, "class")] = append(found[attr(n, "class")], n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, sample(), "Finite <Automaton>"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("missing doctype: %.40s", out)
	}
	if !strings.Contains(out, "<title>Finite &lt;Automaton&gt;</title>") {
		t.Fatal("title is missing or not escaped")
	}

	found := groups(t, buf.Bytes())

	colors := make(map[string]string)
	for _, g := range found["state"] {
		circle := g.FirstChild
		if circle == nil || circle.Data != "circle" {
			t.Fatalf("state group without circle")
		}
		colors[attr(g, "data-state")] = attr(circle, "fill")
	}
	expected := map[string]string{"S": ColorStart, "A": ColorState, "Ω": ColorAccepting}
	if len(colors) != len(expected) {
		t.Fatalf("expected %d states, got %v", len(expected), colors)
	}
	for s, c := range expected {
		if colors[s] != c {
			t.Fatalf("state %s: expected %s, got %s", s, c, colors[s])
		}
	}

	labels := make(map[string]string)
	for _, g := range found["transition"] {
		var label *html.Node
		for c := g.FirstChild; c != nil; c = c.NextSibling {
			if c.Data == "text" {
				label = c
			}
		}
		if label == nil {
			t.Fatal("transition without label")
		}
		labels[attr(g, "data-from")+">"+attr(g, "data-to")] = text(label)
	}
	if labels["S>A"] != "a,b" || labels["A>A"] != "a" || labels["A>Ω"] != "c" || len(labels) != 3 {
		t.Fatalf("unexpected edge labels %v", labels)
	}
}

func TestSingleState(t *testing.T) {
	a := automaton.New([]automaton.State{automaton.Final}, nil, automaton.Final, []automaton.State{automaton.Final})
	var buf bytes.Buffer
	if err := WriteHTML(&buf, a, "single"); err != nil {
		t.Fatal(err)
	}
	if len(groups(t, buf.Bytes())["state"]) != 1 {
		t.Fatal("expected a single state")
	}
}

func TestToFileHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fa.html")
	b := NewBrowser(time.Second)
	if err := b.ToFile(context.Background(), sample(), "FA", path); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(groups(t, content)["state"]) != 3 {
		t.Fatal("written page is missing states")
	}
}

func TestToFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fa.gif")
	err := NewBrowser(time.Second).ToFile(context.Background(), sample(), "FA", path)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("nothing should be written for an unsupported format")
	}
}

func haveChrome() bool {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestToFileBrowser(t *testing.T) {
	if testing.Short() || !haveChrome() {
		t.Skip("headless Chrome not available")
	}

	dir := t.TempDir()
	b := NewBrowser(30 * time.Second)
	for name, magic := range map[string]string{"fa.png": "\x89PNG", "fa.pdf": "%PDF"} {
		path := filepath.Join(dir, name)
		if err := b.ToFile(context.Background(), sample(), "FA", path); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(content, []byte(magic)) {
			t.Fatalf("%s: unexpected header %.8q", name, string(content))
		}
	}
}
