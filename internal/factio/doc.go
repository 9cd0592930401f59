// Package factio reads fact documents: the serialized hand-off from inference to
// diagnostic synthesis. A document lists the source files the facts point into and
// the facts themselves; YAML, JSON and msgpack encodings share one schema.
package factio

// Document is the on-disk form of a batch of facts.
type Document struct {
	// SourceFile names the checked file; empty means the first non-library file.
	SourceFile string    `yaml:"source_file,omitempty"`
	Files      []FileDoc `yaml:"files"`
	Facts      []FactDoc `yaml:"facts"`
}

// FileDoc is a source file; without Content it is read from disk relative to the document.
type FileDoc struct {
	Path    string  `yaml:"path"`
	Content *string `yaml:"content,omitempty"`
	Lib     bool    `yaml:"lib,omitempty"`
}

type LocDoc struct {
	File  string `yaml:"file"`
	Start int64  `yaml:"start"`
	End   int64  `yaml:"end"`
}

type DescDoc struct {
	Kind  string   `yaml:"kind"`
	Name  string   `yaml:"name,omitempty"`
	Value string   `yaml:"value,omitempty"`
	Inner *DescDoc `yaml:"inner,omitempty"`
}

type ReasonDoc struct {
	Loc    *LocDoc `yaml:"loc,omitempty"`
	Desc   DescDoc `yaml:"desc"`
	Origin string  `yaml:"origin,omitempty"`
}

// RootDoc is a blame root; which reason fields apply depends on Kind.
type RootDoc struct {
	Kind         string      `yaml:"kind"`
	Left         *ReasonDoc  `yaml:"left,omitempty"`
	Right        *ReasonDoc  `yaml:"right,omitempty"`
	Target       *ReasonDoc  `yaml:"target,omitempty"`
	Source       *ReasonDoc  `yaml:"source,omitempty"`
	From         *ReasonDoc  `yaml:"from,omitempty"`
	To           *ReasonDoc  `yaml:"to,omitempty"`
	Base         *ReasonDoc  `yaml:"base,omitempty"`
	Derived      *ReasonDoc  `yaml:"derived,omitempty"`
	Iface        *ReasonDoc  `yaml:"iface,omitempty"`
	CallSite     *ReasonDoc  `yaml:"call_site,omitempty"`
	Callee       *ReasonDoc  `yaml:"callee,omitempty"`
	Arguments    []ReasonDoc `yaml:"arguments,omitempty"`
	Value        *ReasonDoc  `yaml:"value,omitempty"`
	DeclaredType *ReasonDoc  `yaml:"declared_type,omitempty"`
	Function     *ReasonDoc  `yaml:"function,omitempty"`
	Property     *ReasonDoc  `yaml:"property,omitempty"`
	Op           *ReasonDoc  `yaml:"op,omitempty"`
	Component    *ReasonDoc  `yaml:"component,omitempty"`
	Type         *ReasonDoc  `yaml:"type,omitempty"`
	What         string      `yaml:"what,omitempty"`
}

type FrameDoc struct {
	Kind           string     `yaml:"kind"`
	Index          int        `yaml:"index,omitempty"`
	Name           string     `yaml:"name,omitempty"`
	Lower          *ReasonDoc `yaml:"lower,omitempty"`
	Upper          *ReasonDoc `yaml:"upper,omitempty"`
	Sentinel       bool       `yaml:"sentinel,omitempty"`
	Variance       string     `yaml:"variance,omitempty"`
	DefinitionSite *ReasonDoc `yaml:"definition_site,omitempty"`
	CallSite       *ReasonDoc `yaml:"call_site,omitempty"`
}

// ChainDoc lists frames leaf first, the way a chain is printed.
type ChainDoc struct {
	Root   RootDoc    `yaml:"root"`
	Frames []FrameDoc `yaml:"frames,omitempty"`
}

type CaseDoc struct {
	Index  int       `yaml:"index"`
	Reason ReasonDoc `yaml:"reason"`
}

type BranchDoc struct {
	Member ReasonDoc `yaml:"member"`
	Fact   FactDoc   `yaml:"fact"`
}

// FactDoc is any fact of the catalog; Kind selects the fields that apply.
type FactDoc struct {
	Kind string `yaml:"kind"`

	Lower      *ReasonDoc `yaml:"lower,omitempty"`
	Upper      *ReasonDoc `yaml:"upper,omitempty"`
	PropReason *ReasonDoc `yaml:"prop_reason,omitempty"`
	Object     *ReasonDoc `yaml:"object,omitempty"`
	From       *ReasonDoc `yaml:"from,omitempty"`
	To         *ReasonDoc `yaml:"to,omitempty"`
	Callee     *ReasonDoc `yaml:"callee,omitempty"`
	CallSite   *ReasonDoc `yaml:"call_site,omitempty"`
	Left       *ReasonDoc `yaml:"left,omitempty"`
	Right      *ReasonDoc `yaml:"right,omitempty"`
	Type       *ReasonDoc `yaml:"type,omitempty"`
	Reason     *ReasonDoc `yaml:"reason,omitempty"`
	First      *ReasonDoc `yaml:"first,omitempty"`

	Prop          string `yaml:"prop,omitempty"`
	Name          string `yaml:"name,omitempty"`
	Detail        string `yaml:"detail,omitempty"`
	Op            string `yaml:"op,omitempty"`
	Literal       string `yaml:"literal,omitempty"`
	Rule          string `yaml:"rule,omitempty"`
	Module        string `yaml:"module,omitempty"`
	Msg           string `yaml:"msg,omitempty"`
	What          string `yaml:"what,omitempty"`
	Use           string `yaml:"use,omitempty"`
	Access        string `yaml:"access,omitempty"`
	LowerPolarity string `yaml:"lower_polarity,omitempty"`
	UpperPolarity string `yaml:"upper_polarity,omitempty"`

	Expected   int `yaml:"expected,omitempty"`
	Got        int `yaml:"got,omitempty"`
	LowerArity int `yaml:"lower_arity,omitempty"`
	UpperArity int `yaml:"upper_arity,omitempty"`

	Candidates  []string    `yaml:"candidates,omitempty"`
	Case1       *CaseDoc    `yaml:"case1,omitempty"`
	Case2       *CaseDoc    `yaml:"case2,omitempty"`
	Annotations []ReasonDoc `yaml:"annotations,omitempty"`
	Loc         *LocDoc     `yaml:"loc,omitempty"`
	Error       bool        `yaml:"error,omitempty"`

	Chain    *ChainDoc   `yaml:"chain,omitempty"`
	Branches []BranchDoc `yaml:"branches,omitempty"`
}
