package dict

// builtinModules ships a minimal "latex" module so the dictionary loader
// and a Manuscript's format module (§4.4 step 2) are usable without any
// external data files configured. A real deployment supplies a richer set
// of module files on the loader's search path (§1 "packaged static data
// files" remain an external collaborator); this is just enough vocabulary
// to exercise the input, heading, label, ref, cite, bibitem, begin/end and
// math actions plus the supplemented \include/\subfile extension point
// (SPEC_FULL.md item 2). It declares no endmath entry.
var builtinModules = map[string]rawModule{
	"latex": {
		Commands: map[string]rawCmd{
			"begin":   {Action: "begin", Args: []rawArg{{Kind: "mandatory", Name: "environment"}}},
			"end":     {Action: "end", Args: []rawArg{{Kind: "mandatory", Name: "environment"}}},
			"input":   {Action: "input", FilenameTemplate: "%s.tex", Args: []rawArg{{Kind: "mandatory", Name: "file"}}},
			"include": {Action: "input", FilenameTemplate: "%s.tex", Args: []rawArg{{Kind: "mandatory", Name: "file"}}},
			"subfile": {Action: "input", FilenameTemplate: "%s.tex", Args: []rawArg{{Kind: "mandatory", Name: "file"}}},
			"usepackage": {
				Action: "input", FilenameTemplate: "%s.sty",
				Args: []rawArg{{Kind: "optional", Name: "options"}, {Kind: "mandatory", Name: "package"}},
			},
			"label": {Action: "label", Args: []rawArg{{Kind: "mandatory", Name: "name"}}},
			"ref":   {Action: "ref", Doc: "Cross-reference a label.", Args: []rawArg{{Kind: "mandatory", Name: "reference"}}},
			"pageref": {
				Action: "ref", Doc: "Cross-reference a label's page.",
				Args: []rawArg{{Kind: "mandatory", Name: "reference"}},
			},
			"cite": {Action: "cite", Doc: "Cite a bibliography entry.", Args: []rawArg{{Kind: "mandatory", Name: "key"}}},
			"bibitem": {
				Action: "bibitem", Args: []rawArg{{Kind: "optional", Name: "label"}, {Kind: "mandatory", Name: "key"}},
			},
			"part": {Action: "heading", HeadingLevel: 0,
				Args: []rawArg{{Kind: "star"}, {Kind: "optional", Name: "short title"}, {Kind: "mandatory", Name: "title"}}},
			"chapter": {Action: "heading", HeadingLevel: 1,
				Args: []rawArg{{Kind: "star"}, {Kind: "optional", Name: "short title"}, {Kind: "mandatory", Name: "title"}}},
			"section": {Action: "heading", HeadingLevel: 2,
				Args: []rawArg{{Kind: "star"}, {Kind: "optional", Name: "short title"}, {Kind: "mandatory", Name: "title"}}},
			"subsection": {Action: "heading", HeadingLevel: 3,
				Args: []rawArg{{Kind: "star"}, {Kind: "optional", Name: "short title"}, {Kind: "mandatory", Name: "title"}}},
			"subsubsection": {Action: "heading", HeadingLevel: 4,
				Args: []rawArg{{Kind: "star"}, {Kind: "optional", Name: "short title"}, {Kind: "mandatory", Name: "title"}}},
			"paragraph": {Action: "heading", HeadingLevel: 5,
				Args: []rawArg{{Kind: "star"}, {Kind: "optional", Name: "short title"}, {Kind: "mandatory", Name: "title"}}},
			"includegraphics": {
				Args: []rawArg{{Kind: "keyval", Delimiter: "[", Keys: []rawKeySchema{
					{Name: "width"}, {Name: "height"}, {Name: "scale"}, {Name: "keepaspectratio", Values: []string{"true", "false"}},
				}}, {Kind: "mandatory", Name: "file"}},
			},
		},
		Environments: map[string]rawEnv{
			"document":    {},
			"itemize":     {},
			"enumerate":   {},
			"figure":      {Args: []rawArg{{Kind: "optional", Name: "placement"}}},
			"table":       {Args: []rawArg{{Kind: "optional", Name: "placement"}}},
			"tabular":     {Args: []rawArg{{Kind: "mandatory", Name: "columns"}}},
			"equation":    {Action: "math"},
			"align":       {Action: "math"},
			"abstract":    {},
			"description": {},
		},
	},
}
