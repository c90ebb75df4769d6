// adtgen turns the node declarations in ast/nodes.adt into Go sum types:
// one marker interface per family and one struct per node.
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"unicode"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type Decls struct {
	Imports  []string  `("import" @String)*`
	Families []*Family `@@*`
}

type Family struct {
	Name  string  `"family" @Ident "{"`
	Nodes []*Node `@@* "}"`
}

type Node struct {
	Name   string   `@Ident "{"`
	Fields []*Field `( @@ ( ";" @@ )* )? "}"`
}

// Field is `Name []*pkg.Type`. A qualified type parses as Type "pkg" with
// Sel "Type".
type Field struct {
	Name    string `@Ident`
	Slice   bool   `@( "[" "]" )?`
	Pointer bool   `@"*"?`
	Type    string `@Ident`
	Sel     string `( "." @Ident )?`
}

func marker(family string) string {
	r := []rune(family)
	r[0] = unicode.ToLower(r[0])
	return string(r) + "Node"
}

func kindCode(field *Field, imports map[string]string) Code {
	code := Id(field.Type)
	if field.Sel != "" {
		path, ok := imports[field.Type]
		if !ok {
			panic(fmt.Sprintf("field %s: package %s is not imported", field.Name, field.Type))
		}
		code = Qual(path, field.Sel)
	}
	if field.Pointer {
		code = Op("*").Add(code)
	}
	if field.Slice {
		code = Index().Add(code)
	}
	return code
}

func GenerateDecls(pkgname string, d *Decls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by adtgen. DO NOT EDIT.")

	imports := map[string]string{}
	for _, imp := range d.Imports {
		imports[path.Base(imp)] = imp
		f.ImportName(imp, path.Base(imp))
	}

	for _, fam := range d.Families {
		m := marker(fam.Name)
		f.Type().Id(fam.Name).Interface(
			Id(m).Params(),
		)

		for _, node := range fam.Nodes {
			var fields []Code
			for _, field := range node.Fields {
				fields = append(fields, Id(field.Name).Add(kindCode(field, imports)))
			}
			f.Type().Id(node.Name).Struct(fields...)
			f.Func().Params(Id("n").Op("*").Id(node.Name)).Id(m).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

var declParser = participle.MustBuild(&Decls{}, participle.Unquote("String"))

func ParseDecls(data []byte) (*Decls, error) {
	decls := &Decls{}
	if err := declParser.ParseBytes(data, decls); err != nil {
		return nil, err
	}
	return decls, nil
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <in.adt> <out.go> <package>")
		os.Exit(2)
	}
	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls, err := ParseDecls(inData)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, decls)), 0644)
	if err != nil {
		panic(err)
	}
}
