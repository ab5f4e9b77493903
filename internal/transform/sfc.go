package transform

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/uibuild/internal/foundation/errors"
)

// SFCBlock is one top-level block of a single-file component.
type SFCBlock struct {
	Content string
	Lang    string
	Scoped  bool
	Module  bool
}

// SFCDescriptor holds the top-level blocks of a single-file component.
type SFCDescriptor struct {
	Template *SFCBlock
	Script   *SFCBlock
	Styles   []SFCBlock
}

// ParseSFC splits a single-file component into its template, script and style blocks.
// Block contents are returned verbatim; nested <template> tags stay inside the outer one.
func ParseSFC(src []byte) (*SFCDescriptor, error) {
	desc := &SFCDescriptor{}
	z := html.NewTokenizer(bytes.NewReader(src))

	var (
		offset   int
		open     string // top-level block currently open
		depth    int    // nested <template> depth inside the open template
		start    int
		openAttr []html.Attribute
	)

	for {
		tt := z.Next()
		raw := len(z.Raw())
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return nil, errors.WrapError(z.Err(), errors.CategoryTransform, "parse single-file component").Build()
		}

		switch tt {
		case html.StartTagToken:
			tok := z.Token()
			switch {
			case open == "":
				if isBlockTag(tok.Data) {
					open = tok.Data
					openAttr = tok.Attr
					start = offset + raw
				}
			case open == "template" && tok.Data == "template":
				depth++
			}
		case html.EndTagToken:
			tok := z.Token()
			if open != "" && tok.Data == open {
				if open == "template" && depth > 0 {
					depth--
					break
				}
				block := newBlock(string(src[start:offset]), openAttr)
				if err := desc.add(open, block); err != nil {
					return nil, err
				}
				open = ""
			}
		}
		offset += raw
	}

	if open != "" {
		return nil, errors.NewError(errors.CategoryTransform, "unterminated block in single-file component").
			WithContext("block", open).Build()
	}
	return desc, nil
}

func (d *SFCDescriptor) add(tag string, block SFCBlock) error {
	switch tag {
	case "template":
		if d.Template != nil {
			return errors.NewError(errors.CategoryTransform, "single-file component has more than one template block").Build()
		}
		d.Template = &block
	case "script":
		if d.Script != nil {
			return errors.NewError(errors.CategoryTransform, "single-file component has more than one script block").Build()
		}
		d.Script = &block
	case "style":
		d.Styles = append(d.Styles, block)
	}
	return nil
}

func isBlockTag(name string) bool {
	return name == "template" || name == "script" || name == "style"
}

func newBlock(content string, attrs []html.Attribute) SFCBlock {
	b := SFCBlock{Content: content}
	for _, a := range attrs {
		switch strings.ToLower(a.Key) {
		case "lang":
			b.Lang = strings.TrimSpace(a.Val)
		case "scoped":
			b.Scoped = true
		case "module":
			b.Module = true
		}
	}
	return b
}

// HasScoped reports whether any style block is scoped.
func (d *SFCDescriptor) HasScoped() bool {
	for _, s := range d.Styles {
		if s.Scoped {
			return true
		}
	}
	return false
}
