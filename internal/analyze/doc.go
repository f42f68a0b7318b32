// Package analyze reads metric definitions out of Go source.
//
// Analysis tools written in Go often describe their output records as
// structs. A Collector loads such a package with golang.org/x/tools/go/packages
// and turns the exported structs named after an element type (Method,
// Attribute, Class, Package) into a property catalog:
//
//	type Method struct {
//		LLOC int     `metric:"LLOC"`
//		McCC float64 `metric:"McCC"`
//		Name string
//	}
//
// Integer fields become int properties, floating-point fields float and
// string fields string. Other fields are skipped; embedded structs are
// flattened.
package analyze
