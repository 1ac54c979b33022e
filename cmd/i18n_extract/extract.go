// Copyright 2025, the Phrasebook contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/packages"
)

// key identifies a gettext entry. plural is empty for singular entries.
type key struct {
	ctx    string
	id     string
	plural string
}

func (k key) compare(o key) int {
	return cmp.Or(cmp.Compare(k.ctx, o.ctx), cmp.Compare(k.id, o.id), cmp.Compare(k.plural, o.plural))
}

type ref struct {
	file string
	line int
}

// entry is a message with every place it is used, sorted.
type entry struct {
	key
	refs []ref
}

// argPos locates the constant arguments of a translation call; -1 means absent.
type argPos struct {
	ctx, id, plural int
}

// trFuncs lists the functions of the i18n package whose arguments are msgids.
var trFuncs = map[string]argPos{
	"Tr":           {ctx: -1, id: 1, plural: -1},
	"TrC":          {ctx: 1, id: 2, plural: -1},
	"TrN":          {ctx: -1, id: 1, plural: 2},
	"TrNC":         {ctx: 1, id: 2, plural: 3},
	"NewUserError": {ctx: -1, id: 1, plural: -1},
}

// extractor collects the messages of one package.
type extractor struct {
	refs     map[key][]ref
	root     string
	fset     *token.FileSet
	info     *types.Info
	i18nPkgs map[string]struct{}
}

// extract returns every message used in pkgs, sorted by context, msgid and plural.
// Positions are reported relative to root.
func extract(pkgs []*packages.Package, root string) []entry {
	refs := map[key][]ref{}
	i18nPkgs := findI18nPkgPaths(pkgs)

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{refs: refs, root: root, fset: p.Fset, info: p.TypesInfo, i18nPkgs: i18nPkgs}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.call(x)
				case *ast.CompositeLit:
					e.compositeLit(x)
				case *ast.ValueSpec:
					e.valueSpec(x)
				}

				return true
			})
		}
	}

	return collect(refs)
}

// collect turns the reference map into sorted, deduplicated entries.
func collect(refs map[key][]ref) []entry {
	out := make([]entry, 0, len(refs))

	for k, rs := range refs {
		slices.SortFunc(rs, func(a, b ref) int {
			return cmp.Or(cmp.Compare(a.file, b.file), cmp.Compare(a.line, b.line))
		})

		out = append(out, entry{key: k, refs: slices.Compact(rs)})
	}

	slices.SortFunc(out, func(a, b entry) int { return a.compare(b.key) })

	return out
}

// findI18nPkgPaths returns the paths of packages named i18n that define a
// MsgKey type over string, however they are imported.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "i18n" || p.Types == nil {
			continue
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			continue
		}

		if basic, ok := tn.Type().Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// constString evaluates expr to a constant string, including named constants
// and concatenations.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is i18n.MsgKey, aliases included.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}

	_, ok = e.i18nPkgs[named.Obj().Pkg().Path()]

	return ok && named.Obj().Name() == "MsgKey"
}

// addConst records expr when it is a constant string.
func (e *extractor) addConst(expr ast.Expr) {
	if msg, ok := constString(e.info, expr); ok {
		e.add(expr.Pos(), key{id: msg})
	}
}

func (e *extractor) add(pos token.Pos, k key) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.root, file); err == nil {
		file = rel
	}

	e.refs[k] = append(e.refs[k], ref{file: filepath.ToSlash(file), line: p.Line})
}

// valueSpec handles declarations such as `var X i18n.MsgKey = "..."` and
// `const X i18n.MsgKey = "..."`.
func (e *extractor) valueSpec(x *ast.ValueSpec) {
	if x.Type == nil {
		return
	}

	if tv, ok := e.info.Types[x.Type]; !ok || !e.isMsgKey(tv.Type) {
		return
	}

	for _, v := range x.Values {
		e.addConst(v)
	}
}

// compositeLit finds constants assigned to MsgKey map keys, values,
// elements and struct fields.
func (e *extractor) compositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keys, vals := e.isMsgKey(u.Key()), e.isMsgKey(u.Elem())

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keys {
				e.addConst(kv.Key)
			}

			if vals {
				e.addConst(kv.Value)
			}
		}
	case *types.Slice:
		e.elements(x, u.Elem())
	case *types.Array:
		e.elements(x, u.Elem())
	case *types.Struct:
		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				id, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}

				if f, ok := e.info.Uses[id].(*types.Var); ok && e.isMsgKey(f.Type()) {
					e.addConst(kv.Value)
				}

				continue
			}

			if i < u.NumFields() && e.isMsgKey(u.Field(i).Type()) {
				e.addConst(elt)
			}
		}
	}
}

func (e *extractor) elements(x *ast.CompositeLit, elem types.Type) {
	if !e.isMsgKey(elem) {
		return
	}

	for _, elt := range x.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			elt = kv.Value
		}

		e.addConst(elt)
	}
}

// call handles MsgKey conversions, the translation functions and any other
// call passing a constant to a MsgKey parameter.
func (e *extractor) call(x *ast.CallExpr) {
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && e.isMsgKey(tv.Type) {
			e.addConst(x.Args[0])
		}

		return
	}

	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && fn.Pkg() != nil {
			if _, ours := e.i18nPkgs[fn.Pkg().Path()]; ours {
				if pos, ok := trFuncs[fn.Name()]; ok {
					e.trCall(x, pos)

					return
				}
			}
		}
	}

	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return
	}

	params := sig.Params()
	last := params.Len() - 1

	for i, arg := range x.Args {
		var pt types.Type

		switch {
		case sig.Variadic() && i >= last:
			// f(xs...) is covered by the composite literal of xs.
			if x.Ellipsis != token.NoPos {
				continue
			}

			pt = params.At(last).Type().(*types.Slice).Elem()
		case i < params.Len():
			pt = params.At(i).Type()
		default:
			return
		}

		if e.isMsgKey(pt) {
			e.addConst(arg)
		}
	}
}

// trCall records a call to one of trFuncs when every message argument is constant.
func (e *extractor) trCall(x *ast.CallExpr, pos argPos) {
	arg := func(i int) (string, bool) {
		if i < 0 {
			return "", true
		}

		if i >= len(x.Args) {
			return "", false
		}

		return constString(e.info, x.Args[i])
	}

	ctx, ok1 := arg(pos.ctx)
	id, ok2 := arg(pos.id)
	plural, ok3 := arg(pos.plural)

	if ok1 && ok2 && ok3 {
		e.add(x.Args[pos.id].Pos(), key{ctx: ctx, id: id, plural: plural})
	}
}
