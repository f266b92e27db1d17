package passes_test

import (
	"io"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"soyc-go/packages/compiler/passes"
	"soyc-go/packages/compiler/soytree"
)

func flatten(t *testing.T, text string) []soytree.StandaloneNode {
	t.Helper()
	return passes.Desugar(structureTemplate(t, text))
}

func flattenSource(t *testing.T, text string) string {
	t.Helper()
	return soytree.SourceString(flatten(t, text))
}

func TestDesugar_Identity(t *testing.T) {
	cases := []struct {
		name     string
		template string
	}{
		{"a plain element", `<div class="content">Hello</div>`},
		{"an unquoted attribute value", `<div class=foo>x</div>`},
		{"a self closing tag after an unquoted value", `<div class=foo />`},
		{"a self closing tag after a quoted value", `<img src="x"/>`},
		{"a bare self closing tag", `<br/>`},
		{"a slash inside an unquoted value", `<div class=foo/>`},
		{"a comment", `<!-- note -->`},
		{"a quoted value per branch", `<div class={if $c}"a"{else}"b"{/if}>`},
		{"unquoted value fragments", `<div class=x{if $c}y{else}z{/if}w>`},
		{"a dynamic tag name", `<{$tag} class="a">x</{$tag}>`},
		{"a loop over list items", `<ul>{for $it in $items}<li>{$it}</li>{/for}</ul>`},
		{"a print inside a quoted value", `<div class="a {$b} c">`},
	}
	for _, tc := range cases {
		t.Run("should leave "+tc.name+" unchanged", func(t *testing.T) {
			if got := flattenSource(t, tc.template); got != tc.template {
				t.Errorf("Expected %q, got %q", tc.template, got)
			}
		})
	}
}

func TestDesugar_Normalization(t *testing.T) {
	cases := []struct {
		name     string
		template string
		expected string
	}{
		{
			"extra whitespace between attributes",
			`<div   class="a"  id=b>x</div>`,
			`<div class="a" id=b>x</div>`,
		},
		{
			"whitespace before the tag end",
			`<div class="a" >x</div>`,
			`<div class="a">x</div>`,
		},
		{
			"whitespace inside a close tag",
			`<div>x</div   >`,
			`<div>x</div>`,
		},
		{
			"an attribute conditional into each branch",
			`<p {if $t}class='foo'{else}style='baz'{/if}>`,
			`<p{if $t} class='foo'{else} style='baz'{/if}>`,
		},
		{
			"a switch choosing between attribute sets",
			`<div {switch $v}{case 1}a=1{default}b=2{/switch}>`,
			`<div{switch $v}{case 1} a=1{default} b=2{/switch}>`,
		},
		{
			"a space before the slash when a branch may end unquoted",
			`<div class={if $c}"a"{else}"b"{/if}/>`,
			`<div class={if $c}"a"{else}"b"{/if} />`,
		},
	}
	for _, tc := range cases {
		t.Run("should normalize "+tc.name, func(t *testing.T) {
			if got := flattenSource(t, tc.template); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestDesugar_Structure(t *testing.T) {
	t.Run("should move the attribute space into each branch", func(t *testing.T) {
		result := flatten(t, `<p {if $t}class='foo'{else}style='baz'{/if}>`)
		expected := lines(
			`RawText "<p"`,
			`ControlFlow if`,
			`  Branch $t`,
			`    RawText " class='foo'"`,
			`  Branch default`,
			`    RawText " style='baz'"`,
			`RawText ">"`,
		)
		if diff := cmp.Diff(expected, soytree.TreeString(result)); diff != "" {
			t.Errorf("TreeString() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should collapse static markup to a single raw text node", func(t *testing.T) {
		result := flatten(t, `<div class="a"><!-- c --><img src=x/></div>`)
		if len(result) != 1 {
			t.Fatalf("Expected one node, got %d:\n%s", len(result), soytree.TreeString(result))
		}
		if _, ok := result[0].(*soytree.RawTextNode); !ok {
			t.Fatalf("Expected a raw text node, got %T", result[0])
		}
	})
}

func TestDesugar_FixedPoint(t *testing.T) {
	inputs := []string{
		`<p {if $t}class='foo'{else}style='baz'{/if}>`,
		`<div   class="a"  id=b>x</div>`,
		`<div class=foo />`,
		`<div class={if $c}"a"{else}"b"{/if}/>`,
		`<div {switch $v}{case 1}a=1{default}b=2{/switch}>`,
		`<ul>{for $it in $items}<li>{$it}</li>{/for}</ul>`,
		`<!-- note --><img src="x"/>`,
		`<{$tag} class="a">x</{$tag}>`,
	}
	for _, input := range inputs {
		t.Run("should be a fixed point for "+input, func(t *testing.T) {
			once := flattenSource(t, input)
			twice := flattenSource(t, once)
			if twice != once {
				t.Errorf("Expected a fixed point.\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestDesugar_SourceOffsets(t *testing.T) {
	t.Run("should keep surviving text anchored to the source", func(t *testing.T) {
		result := flatten(t, `<div  class=foo>x</div>`)
		merged := result[0].(*soytree.RawTextNode)
		if merged.Text() != `<div class=foo>x</div>` {
			t.Fatalf("Unexpected text %q", merged.Text())
		}
		checks := []struct {
			index  int
			offset int
		}{
			{1, 1},   // d of div
			{5, 6},   // c of class, past the dropped space
			{11, 12}, // f of foo
			{15, 16}, // the text child
		}
		for _, c := range checks {
			if got := merged.LocationOf(c.index).Offset; got != c.offset {
				t.Errorf("LocationOf(%d): expected offset %d, got %d", c.index, c.offset, got)
			}
		}
	})
}

// tokenStream renders a document's token sequence with the tags,
// attributes and text each token carries, so two documents can be
// compared for html equivalence regardless of whitespace inside tags.
func tokenStream(t *testing.T, doc string) []string {
	t.Helper()
	z := html.NewTokenizer(strings.NewReader(doc))
	var stream []string
	for {
		if z.Next() == html.ErrorToken {
			if z.Err() != io.EOF {
				t.Fatalf("tokenizer error on %q: %v", doc, z.Err())
			}
			return stream
		}
		tok := z.Token()
		entry := tok.Type.String() + " " + tok.Data
		for _, a := range tok.Attr {
			entry += " " + a.Key + "=" + a.Val
		}
		stream = append(stream, entry)
	}
}

func randomElement(f *gofakeit.Faker, b *strings.Builder, depth int) {
	tags := []string{"div", "span", "p", "section", "li"}
	attrNames := []string{"class", "id", "title", "data-kind"}
	tag := tags[f.Number(0, len(tags)-1)]
	b.WriteByte('<')
	b.WriteString(tag)
	used := map[string]bool{}
	for i := f.Number(0, 3); i > 0; i-- {
		name := attrNames[f.Number(0, len(attrNames)-1)]
		if used[name] {
			continue
		}
		used[name] = true
		b.WriteString(strings.Repeat(" ", f.Number(1, 3)))
		b.WriteString(name)
		switch f.Number(0, 2) {
		case 0:
			b.WriteString(`="` + f.Word() + `"`)
		case 1:
			b.WriteString(`='` + f.Word() + `'`)
		case 2:
			b.WriteString("=" + f.Word())
		}
	}
	b.WriteString(strings.Repeat(" ", f.Number(0, 2)))
	b.WriteByte('>')
	if depth < 2 {
		for i := f.Number(0, 2); i > 0; i-- {
			if f.Bool() {
				b.WriteString(f.Word())
			} else {
				randomElement(f, b, depth+1)
			}
		}
	} else {
		b.WriteString(f.Word())
	}
	b.WriteString("</" + tag + ">")
}

func TestDesugar_TokenizerEquivalence(t *testing.T) {
	t.Run("should preserve the token stream of random documents", func(t *testing.T) {
		f := gofakeit.New(7)
		for i := 0; i < 32; i++ {
			var b strings.Builder
			randomElement(f, &b, 0)
			doc := b.String()

			result := flatten(t, doc)
			if len(result) != 1 {
				t.Fatalf("Expected one node for %q, got %d", doc, len(result))
			}
			flat := result[0].(*soytree.RawTextNode).Text()

			want := tokenStream(t, doc)
			got := tokenStream(t, flat)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("token stream mismatch for %q -> %q (-want +got):\n%s", doc, flat, diff)
			}
		}
	})
}
