// Package metrics describes the records of a source code analyzer.
package metrics

type Kind string

type Common struct {
	NUMPAR int32
}

type Method struct {
	Common

	LLOC   int     `metric:"LLOC"`
	McCC   float64 `metric:"McCC"`
	Name   string
	Kind   Kind
	Calls  []string
	Skip   int `metric:"-"`
	hidden int
}

type Class struct {
	NOA   uint
	Ratio float32
	LLOC  int
	NOA2  uint `metric:"NOA"`
}

type Summary struct {
	Total int
}

type Resource struct {
	ID string
}
