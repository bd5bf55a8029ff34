// Command jsoniq runs a small fixed set of FLWOR queries against
// in-memory sample data, the programmatic counterpart of the
// janus-datalog's cmd/datalog demo/interactive driver. Parsing query text
// into an ast.Node tree is an explicit external collaborator (the
// core only consumes already-built trees), so this driver builds its
// demo queries directly with ast.Generic rather than accepting query
// strings on the command line.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dataflowql/jsoniq-core/annotations"
	"github.com/dataflowql/jsoniq-core/ast"
	"github.com/dataflowql/jsoniq-core/expr"
	_ "github.com/dataflowql/jsoniq-core/flwor"
	"github.com/dataflowql/jsoniq-core/iterator"
	"github.com/dataflowql/jsoniq-core/item"
	"github.com/dataflowql/jsoniq-core/registry"
	"github.com/dataflowql/jsoniq-core/runtimectx"
)

func main() {
	var verbose bool
	var name string
	flag.BoolVar(&verbose, "verbose", false, "print a plan outline before each query's results")
	flag.StringVar(&name, "query", "", "run a single named demo query and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Runs FLWOR queries over in-memory sample data.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nDemo queries: %v\n", demoNames())
	}
	flag.Parse()

	if name != "" {
		runQuery(name, verbose)
		return
	}
	for _, n := range demoNames() {
		runQuery(n, verbose)
	}
}

func demoNames() []string {
	names := make([]string, 0, len(demoQueries))
	for n := range demoQueries {
		names = append(names, n)
	}
	return names
}

func runQuery(name string, verbose bool) {
	build, ok := demoQueries[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown demo query %q\n", name)
		return
	}
	node := build()

	fmt.Printf("=== %s ===\n", name)
	if verbose {
		fmt.Print(annotations.NewExplain(true).Render(annotations.BuildExplainTree(node)))
	}

	logger, _ := zap.NewDevelopment()
	rc := runtimectx.New(logger, nil)
	reg := registry.NewFunctionRegistry()
	env := expr.Env{Registry: reg}

	it, err := expr.Build(node, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build error: %v\n", err)
		return
	}
	if err := it.Open(rc); err != nil {
		fmt.Fprintf(os.Stderr, "open error: %v\n", err)
		return
	}
	defer it.Close()

	results, err := iterator.Drain(it)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eval error: %v\n", err)
		return
	}
	for _, v := range results {
		fmt.Printf("  %s\n", v.String())
	}
	fmt.Println()
}

var demoQueries = map[string]func() ast.Node{
	"people-over-25": peopleOver25Query,
	"cities-grouped": citiesGroupedQuery,
}

// peopleOver25Query builds: for $p in $people where $p.age gt 25
// return $p.name
func peopleOver25Query() ast.Node {
	people := peopleLiteral()

	forVar := &ast.Generic{NodeKind: ast.KindForClause, Attrs: map[string]interface{}{"name": "p"}, Kids: []ast.Node{people}}

	age := &ast.Generic{NodeKind: ast.KindPathStep, Attrs: map[string]interface{}{"key": "age"}, Kids: []ast.Node{
		&ast.Generic{NodeKind: ast.KindVarRef, Attrs: map[string]interface{}{"name": "p"}},
	}}
	threshold := &ast.Generic{NodeKind: ast.KindLiteral, Attrs: map[string]interface{}{"value": item.NewInteger(25)}}
	where := &ast.Generic{NodeKind: ast.KindWhereClause, Kids: []ast.Node{
		&ast.Generic{NodeKind: ast.KindValueComparison, Attrs: map[string]interface{}{"op": "gt"}, Kids: []ast.Node{age, threshold}},
	}}

	name := &ast.Generic{NodeKind: ast.KindPathStep, Attrs: map[string]interface{}{"key": "name"}, Kids: []ast.Node{
		&ast.Generic{NodeKind: ast.KindVarRef, Attrs: map[string]interface{}{"name": "p"}},
	}}
	ret := &ast.Generic{NodeKind: ast.KindReturnClause, Kids: []ast.Node{name}}

	return &ast.Generic{NodeKind: ast.KindFLWOR, Kids: []ast.Node{forVar, where, ret}}
}

// citiesGroupedQuery builds: for $p in $people group by $city := $p.city
// return $city
func citiesGroupedQuery() ast.Node {
	people := peopleLiteral()
	forVar := &ast.Generic{NodeKind: ast.KindForClause, Attrs: map[string]interface{}{"name": "p"}, Kids: []ast.Node{people}}

	cityExpr := &ast.Generic{NodeKind: ast.KindPathStep, Attrs: map[string]interface{}{"key": "city"}, Kids: []ast.Node{
		&ast.Generic{NodeKind: ast.KindVarRef, Attrs: map[string]interface{}{"name": "p"}},
	}}
	groupBy := &ast.Generic{NodeKind: ast.KindGroupByClause, Kids: []ast.Node{
		&ast.Generic{Attrs: map[string]interface{}{"name": "city"}, Kids: []ast.Node{cityExpr}},
	}}

	ret := &ast.Generic{NodeKind: ast.KindReturnClause, Kids: []ast.Node{
		&ast.Generic{NodeKind: ast.KindVarRef, Attrs: map[string]interface{}{"name": "city"}},
	}}

	return &ast.Generic{NodeKind: ast.KindFLWOR, Kids: []ast.Node{forVar, groupBy, ret}}
}

func peopleLiteral() ast.Node {
	people := []item.Item{
		personItem("Alice", 30, "New York"),
		personItem("Bob", 25, "Boston"),
		personItem("Charlie", 35, "New York"),
	}
	kids := make([]ast.Node, len(people))
	for i, p := range people {
		kids[i] = &ast.Generic{NodeKind: ast.KindLiteral, Attrs: map[string]interface{}{"value": p}}
	}
	return &ast.Generic{NodeKind: ast.KindSequenceConstructor, Kids: kids}
}

func personItem(name string, age int64, city string) item.Object {
	b := item.NewObjectBuilder()
	_ = b.Put("name", item.NewString(name))
	_ = b.Put("age", item.NewInteger(age))
	_ = b.Put("city", item.NewString(city))
	return b.Build()
}
