package core

import (
	"github.com/shinyvision/texls/internal/dict"
	"github.com/shinyvision/texls/internal/texparse"
)

// testScope returns a small, precisely-controlled command/environment
// table so scenario tests can assert exact outline levels etc. without
// depending on the full builtin "latex" module's numbering.
func testScope() *Scope {
	s := NewScope()
	s.DefineCommand("section", &dict.Command{
		Name: "section", Action: dict.ActionHeading, HeadingLevel: 1,
		Args: texparse.Signature{
			{Kind: texparse.ArgStar}, {Kind: texparse.ArgOptional, DisplayName: "short title"}, {Kind: texparse.ArgMandatory, DisplayName: "title"},
		},
	})
	s.DefineCommand("subsection", &dict.Command{
		Name: "subsection", Action: dict.ActionHeading, HeadingLevel: 2,
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "title"}},
	})
	s.DefineCommand("label", &dict.Command{
		Name: "label", Action: dict.ActionLabel,
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "name"}},
	})
	s.DefineCommand("ref", &dict.Command{
		Name: "ref", Action: dict.ActionRef, Documentation: "Cross-reference a label.",
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "reference"}},
	})
	s.DefineCommand("cite", &dict.Command{
		Name: "cite", Action: dict.ActionCite,
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "key"}},
	})
	s.DefineCommand("bibitem", &dict.Command{
		Name: "bibitem", Action: dict.ActionBibitem,
		Args: texparse.Signature{{Kind: texparse.ArgOptional, DisplayName: "label"}, {Kind: texparse.ArgMandatory, DisplayName: "key"}},
	})
	s.DefineCommand("input", &dict.Command{
		Name: "input", Action: dict.ActionInput, FilenameTemplate: "%s.tex",
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "file"}},
	})
	s.DefineCommand("begin", &dict.Command{
		Name: "begin", Action: dict.ActionBegin,
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "environment"}},
	})
	s.DefineCommand("end", &dict.Command{
		Name: "end", Action: dict.ActionEnd,
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "environment"}},
	})
	s.DefineCommand("includegraphics", &dict.Command{
		Name: "includegraphics",
		Args: texparse.Signature{
			{Kind: texparse.ArgKeyVal, Delimiter: "[", Keys: []texparse.KeySchema{
				{Name: "width"}, {Name: "keepaspectratio", Values: []string{"true", "false"}},
			}},
			{Kind: texparse.ArgMandatory, DisplayName: "file"},
		},
	})
	s.DefineEnvironment("itemize", &dict.Environment{Name: "itemize"})
	s.DefineEnvironment("tabular", &dict.Environment{
		Name: "tabular",
		Args: texparse.Signature{{Kind: texparse.ArgMandatory, DisplayName: "columns"}},
	})
	return s
}

// newTestManuscript builds a root Manuscript using testScope instead of
// going through the dictionary loader, for precise scenario control.
func newTestManuscript(cache *FileCache, filename string) *Manuscript {
	src, _ := cache.Get(filename)
	m := &Manuscript{
		Filename: filename,
		Src:      src,
		Depth:    1,
		Format:   "test",
		Scope:    testScope(),
		cache:    cache,
		loader:   dict.NewLoader(),
	}
	m.GlobalScan()
	return m
}

func newTestChildManuscript(cache *FileCache, filename string, parent *Manuscript) *Manuscript {
	src, _ := cache.Get(filename)
	m := &Manuscript{
		Filename: filename,
		Src:      src,
		Parent:   parent,
		Depth:    parent.Depth + 1,
		Format:   parent.Format,
		Scope:    NewChildScope(parent.Scope),
		cache:    cache,
		loader:   parent.loader,
	}
	m.GlobalScan()
	return m
}
