package flwor

import (
	"github.com/dataflowql/jsoniq-core/ast"
)

type attrHolder interface {
	Attr(string) (interface{}, bool)
}

func attrString(node ast.Node, key string) (string, bool) {
	g, ok := node.(attrHolder)
	if !ok {
		return "", false
	}
	v, ok := g.Attr(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func attrStringSlice(node ast.Node, key string) ([]string, bool) {
	g, ok := node.(attrHolder)
	if !ok {
		return nil, false
	}
	v, ok := g.Attr(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}

func attrBool(node ast.Node, key string) (bool, bool) {
	g, ok := node.(attrHolder)
	if !ok {
		return false, false
	}
	v, ok := g.Attr(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
