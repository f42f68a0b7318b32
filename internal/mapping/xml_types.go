package mapping

import (
	"encoding/xml"
	"fmt"
	"strings"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

const xmlVersion = "2.0"

type xmlMapping struct {
	XMLName   xml.Name     `xml:"mapping"`
	Version   string       `xml:"version,attr"`
	Resources *xmlResource `xml:"resources,omitempty"`
	Linkings  []xmlLinking `xml:"linking"`
}

type xmlResource struct {
	Constants []xmlConstant `xml:"constant"`
}

type xmlConstant struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type xmlLinking struct {
	Source   string       `xml:"source,attr"`
	Target   string       `xml:"target,attr"`
	Bindings []xmlBinding `xml:"binding"`
}

type xmlBinding struct {
	From        string          `xml:"from,attr"`
	To          string          `xml:"to,attr"`
	Conversions *xmlConversions `xml:"conversions,omitempty"`
}

type xmlConversions struct {
	Conversion []xmlConversion `xml:"conversion"`
}

type xmlConversion struct {
	Type string `xml:"type,attr"`
}

// Conversion names used by the renderer's XML reader.
var xmlConversionNames = map[compat.Strategy]string{
	compat.ToInt:     "toInt",
	compat.Normalize: "normalize",
	compat.Quantize:  "quantization",
}

func resourceRef(id string) string {
	return "${" + id + "}"
}

func parseResourceRef(from string) (string, bool) {
	if strings.HasPrefix(from, "${") && strings.HasSuffix(from, "}") {
		return from[2 : len(from)-1], true
	}

	return "", false
}

// marshalXML groups consecutive bindings with the same element type into
// one linking element. Resource bindings join the current group.
func marshalXML(d *Document) ([]byte, error) {
	m := xmlMapping{Version: xmlVersion}

	if len(d.Resources) > 0 {
		m.Resources = &xmlResource{}
		for _, id := range d.Resources {
			m.Resources.Constants = append(m.Resources.Constants, xmlConstant{ID: id, Value: id})
		}
	}

	for _, l := range d.Linkings {
		var current *xmlLinking

		for _, b := range l.Bindings {
			xb := xmlBinding{From: b.Property, To: b.Attribute}

			if b.IsResource() {
				xb.From = resourceRef(b.Property)
			} else if name, ok := xmlConversionNames[b.Strategy]; ok {
				xb.Conversions = &xmlConversions{Conversion: []xmlConversion{{Type: name}}}
			} else if b.Strategy != compat.NoConversion {
				return nil, fmt.Errorf("%s.%s: cannot write %s binding", l.Category, b.Attribute, b.Strategy)
			}

			source := string(b.Source)
			if b.IsResource() {
				source = string(l.Category.DefaultSource())
				if current != nil {
					source = current.Source
				}
			}

			if current == nil || current.Source != source {
				m.Linkings = append(m.Linkings, xmlLinking{Source: source, Target: string(l.Category)})
				current = &m.Linkings[len(m.Linkings)-1]
			}

			current.Bindings = append(current.Bindings, xb)
		}
	}

	out, err := xml.MarshalIndent(&m, "", "\t")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func parseXML(data []byte) (*Document, error) {
	var m xmlMapping
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping XML: %w", err)
	}

	d := &Document{}

	if m.Resources != nil {
		for _, c := range m.Resources.Constants {
			if c.ID == "" {
				return nil, fmt.Errorf("resource constant without id")
			}

			d.Resources = append(d.Resources, c.ID)
		}
	}

	for _, xl := range m.Linkings {
		c, err := model.ParseCategory(xl.Target)
		if err != nil {
			return nil, err
		}

		source, err := model.ParseSourceType(xl.Source)
		if err != nil {
			return nil, fmt.Errorf("linking %s: %w", c, err)
		}

		l := d.linking(c)

		for _, xb := range xl.Bindings {
			b, err := xb.binding(source)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", c, xb.To, err)
			}

			l.Bindings = append(l.Bindings, b)
		}
	}

	return d, nil
}

func (xb xmlBinding) binding(source model.SourceType) (Binding, error) {
	if xb.To == "" {
		return Binding{}, fmt.Errorf("binding without target attribute")
	}

	if id, ok := parseResourceRef(xb.From); ok {
		return Binding{Attribute: xb.To, Source: model.SourceResource, Property: id, Strategy: compat.NoConversion}, nil
	}

	if xb.From == "" {
		return Binding{}, fmt.Errorf("binding without source property")
	}

	b := Binding{Attribute: xb.To, Source: source, Property: xb.From, Strategy: compat.NoConversion}

	if xb.Conversions == nil || len(xb.Conversions.Conversion) == 0 {
		return b, nil
	}

	if len(xb.Conversions.Conversion) > 1 {
		return Binding{}, fmt.Errorf("chained conversions are not supported")
	}

	name := xb.Conversions.Conversion[0].Type
	for s, n := range xmlConversionNames {
		if n == name {
			b.Strategy = s
			return b, nil
		}
	}

	return Binding{}, fmt.Errorf("unknown conversion type %q", name)
}
