package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metric-mapper/internal/catalog"
	"metric-mapper/internal/compat"
	"metric-mapper/internal/diagnostic"
	"metric-mapper/internal/mapping"
	"metric-mapper/internal/model"
	"metric-mapper/internal/settings"
)

const testSettings = `
buildables:
  cellar: [height, width, character]
  floor: [width, height, torches]
  garden: [tree-ratio]
  ground: []
types:
  height: int(0..5)
`

func newSession(t *testing.T) *Session {
	t.Helper()

	s, err := settings.Parse([]byte(testSettings))
	require.NoError(t, err)

	return Open(Options{
		Settings: settings.Fixed{S: s},
		Collector: catalog.Static{
			model.SourceMethod: {
				{Name: "linesOfCode", Type: compat.PropInt},
				{Name: "McCC", Type: compat.PropFloat},
				{Name: "name", Type: compat.PropString},
			},
			model.SourceClass: {
				{Name: "NOA", Type: compat.PropInt},
			},
		},
	})
}

func TestSession_EndToEnd(t *testing.T) {
	s := newSession(t)

	strategy, err := s.Bind(model.Cellar, "height", model.SourceMethod, "linesOfCode")
	require.NoError(t, err)
	assert.Equal(t, compat.Quantize, strategy)

	state := s.Binding(model.Slot{Category: model.Cellar, Attribute: "height"})
	assert.Equal(t, SlotState{
		Bound:    true,
		Source:   model.PropertyRef{Source: model.SourceMethod, Name: "linesOfCode"},
		Strategy: compat.Quantize,
	}, state)
	assert.Equal(t, "Bound(quantize, method.linesOfCode)", state.String())

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, s.Save(path))

	doc, err := mapping.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []mapping.Entry{{
		Category: model.Cellar,
		Binding: mapping.Binding{
			Attribute: "height",
			Source:    model.SourceMethod,
			Property:  "linesOfCode",
			Strategy:  compat.Quantize,
		},
	}}, doc.Entries())
}

func TestSession_SlotsAndProperties(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, []model.AttributeSlot{
		{Name: "height", Type: compat.AttrBoundedInt},
		{Name: "width", Type: compat.AttrInt},
		{Name: "character", Type: compat.AttrString},
	}, s.AttributeSlots(model.Cellar))
	assert.Empty(t, s.AttributeSlots(model.Ground))

	props := s.SourceProperties(model.SourceMethod)
	require.Len(t, props, 3)
	assert.Equal(t, "linesOfCode", props[0].Name)
	assert.Empty(t, s.SourceProperties(model.SourcePackage))

	props[0].Name = "mutated"
	assert.Equal(t, "linesOfCode", s.SourceProperties(model.SourceMethod)[0].Name)
}

func TestSession_Rebind(t *testing.T) {
	s := newSession(t)
	slot := model.Slot{Category: model.Floor, Attribute: "width"}

	strategy, err := s.Bind(model.Floor, "width", model.SourceMethod, "linesOfCode")
	require.NoError(t, err)
	assert.Equal(t, compat.NoConversion, strategy)

	strategy, err = s.Bind(model.Floor, "width", model.SourceMethod, "McCC")
	require.NoError(t, err)
	assert.Equal(t, compat.ToInt, strategy)

	assert.Equal(t, "McCC", s.Binding(slot).Source.Name)
	assert.Equal(t, 1, s.Document().Len())
}

func TestSession_RejectDoesNotMutate(t *testing.T) {
	s := newSession(t)
	slot := model.Slot{Category: model.Floor, Attribute: "torches"}

	_, err := s.Bind(model.Floor, "torches", model.SourceMethod, "name")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatible)
	assert.False(t, s.Binding(slot).Bound)

	_, err = s.Bind(model.Floor, "torches", model.SourceMethod, "McCC")
	require.NoError(t, err)
	before := s.Binding(slot)

	_, err = s.Bind(model.Floor, "torches", model.SourceMethod, "name")
	require.Error(t, err)

	var bindErr *BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, compat.AttrBoundedInt, bindErr.AttrType)
	assert.Equal(t, compat.PropString, bindErr.PropType)
	assert.Equal(t, before, s.Binding(slot))
}

func TestSession_BindErrors(t *testing.T) {
	tests := []struct {
		name        string
		category    model.Category
		attribute   string
		source      model.SourceType
		property    string
		kind        error
		suggestions []string
	}{
		{"attribute not displayed", model.Garden, "height", model.SourceClass, "NOA", ErrUnknownSlot, nil},
		{"misspelled attribute", model.Cellar, "heigth", model.SourceMethod, "linesOfCode", ErrUnknownSlot, []string{"height"}},
		{"ground has no attributes", model.Ground, "width", model.SourcePackage, "LOC", ErrUnknownSlot, nil},
		{"unknown property", model.Cellar, "width", model.SourceMethod, "linesOfCod", ErrUnknownProperty, []string{"linesOfCode"}},
		{"property of other element type", model.Cellar, "width", model.SourceClass, "McCC", ErrUnknownProperty, nil},
		{"unknown resource", model.Cellar, "character", model.SourceResource, "stone", ErrUnknownResource, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t)

			_, err := s.Bind(tt.category, tt.attribute, tt.source, tt.property)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var bindErr *BindError
			require.ErrorAs(t, err, &bindErr)
			assert.ElementsMatch(t, tt.suggestions, bindErr.Suggestions)

			assert.Zero(t, s.Document().Len())
		})
	}
}

func TestSession_SameSourceManySlots(t *testing.T) {
	s := newSession(t)

	for _, slot := range []model.Slot{
		{Category: model.Cellar, Attribute: "height"},
		{Category: model.Cellar, Attribute: "width"},
		{Category: model.Floor, Attribute: "height"},
	} {
		_, err := s.Bind(slot.Category, slot.Attribute, model.SourceMethod, "linesOfCode")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, s.Document().Len())
}

func TestSession_Unbind(t *testing.T) {
	s := newSession(t)
	slot := model.Slot{Category: model.Garden, Attribute: "tree-ratio"}

	s.Unbind(model.Garden, "tree-ratio")
	assert.False(t, s.Binding(slot).Bound)

	strategy, err := s.Bind(model.Garden, "tree-ratio", model.SourceClass, "NOA")
	require.NoError(t, err)
	assert.Equal(t, compat.Normalize, strategy)

	s.Unbind(model.Garden, "tree-ratio")
	assert.Equal(t, "Unbound", s.Binding(slot).String())
	assert.Empty(t, s.Document().Linkings)
}

func TestSession_Resources(t *testing.T) {
	s := newSession(t)

	s.AddResource("stone")
	s.AddResource("glass")
	s.AddResource("stone")
	s.AddResource("")
	assert.Equal(t, []string{"stone", "glass"}, s.Resources())

	require.NoError(t, s.BindResource(model.Cellar, "character", "glass"))
	strategy, err := s.Bind(model.Floor, "width", model.SourceResource, "glass")
	require.NoError(t, err)
	assert.Equal(t, compat.NoConversion, strategy)

	s.RemoveResource("glass")
	s.RemoveResource("gold")

	assert.Equal(t, []string{"stone"}, s.Resources())
	assert.False(t, s.Binding(model.Slot{Category: model.Cellar, Attribute: "character"}).Bound)
	assert.False(t, s.Binding(model.Slot{Category: model.Floor, Attribute: "width"}).Bound)
}

func TestSession_ResourceSetSemantics(t *testing.T) {
	s := newSession(t)

	s.AddResource("x")
	s.AddResource("x")
	s.RemoveResource("x")

	assert.Empty(t, s.Resources())
	assert.Nil(t, s.Document().Resources)
}

func TestSession_DocumentOrder(t *testing.T) {
	s := newSession(t)
	s.AddResource("wood")
	s.AddResource("brick")

	// Bind out of display order; the document follows display order.
	_, err := s.Bind(model.Garden, "tree-ratio", model.SourceClass, "NOA")
	require.NoError(t, err)
	require.NoError(t, s.BindResource(model.Cellar, "character", "brick"))
	_, err = s.Bind(model.Cellar, "height", model.SourceMethod, "McCC")
	require.NoError(t, err)

	d := s.Document()
	require.Len(t, d.Linkings, 2)
	assert.Equal(t, model.Cellar, d.Linkings[0].Category)
	assert.Equal(t, "height", d.Linkings[0].Bindings[0].Attribute)
	assert.Equal(t, "character", d.Linkings[0].Bindings[1].Attribute)
	assert.Equal(t, model.Garden, d.Linkings[1].Category)
	assert.Equal(t, []string{"wood", "brick"}, d.Resources)
	assert.True(t, mapping.Validate(d).IsValid())
}

func TestSession_SaveRoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".xml"} {
		t.Run(ext, func(t *testing.T) {
			s := newSession(t)
			s.AddResource("stone")
			s.AddResource("glass")

			_, err := s.Bind(model.Cellar, "height", model.SourceMethod, "linesOfCode")
			require.NoError(t, err)
			_, err = s.Bind(model.Floor, "torches", model.SourceMethod, "McCC")
			require.NoError(t, err)
			require.NoError(t, s.BindResource(model.Cellar, "character", "stone"))

			path := filepath.Join(t.TempDir(), "mapping"+ext)
			require.NoError(t, s.Save(path))

			loaded, err := mapping.Load(path)
			require.NoError(t, err)
			assert.Equal(t, s.Document(), loaded)

			reopened := newSession(t)
			notes := reopened.Apply(loaded)
			assert.Zero(t, notes.Len())
			assert.Equal(t, s.Document(), reopened.Document())
		})
	}
}

func TestSession_SaveFailureKeepsState(t *testing.T) {
	s := newSession(t)
	_, err := s.Bind(model.Cellar, "width", model.SourceMethod, "linesOfCode")
	require.NoError(t, err)

	dir := t.TempDir()
	err = s.Save(filepath.Join(dir, "missing", "mapping.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapping.ErrIO)
	assert.Equal(t, 1, s.Document().Len())

	require.NoError(t, s.Save(filepath.Join(dir, "mapping.yaml")))
}

func TestSession_Apply_Stale(t *testing.T) {
	s := newSession(t)

	doc := &mapping.Document{
		Linkings: []mapping.Linking{
			{Category: model.Cellar, Bindings: []mapping.Binding{
				{Attribute: "height", Source: model.SourceMethod, Property: "linesOfCode", Strategy: compat.NoConversion},
				{Attribute: "width", Source: model.SourceMethod, Property: "gone", Strategy: compat.NoConversion},
				{Attribute: "character", Source: model.SourceResource, Property: "missing", Strategy: compat.NoConversion},
			}},
			{Category: model.Floor, Bindings: []mapping.Binding{
				{Attribute: "torches", Source: model.SourceMethod, Property: "name", Strategy: compat.Quantize},
			}},
		},
	}

	notes := s.Apply(doc)
	assert.Len(t, notes.Warnings, 3)
	assert.Len(t, notes.Infos, 1)
	assert.True(t, notes.HasCode(diagnostic.CodeStrategyChanged))
	notices := s.Notices()
	assert.True(t, notices.HasCode(diagnostic.CodeStaleBinding))

	assert.Equal(t, 1, s.Document().Len())
	assert.Equal(t, compat.Quantize, s.Binding(model.Slot{Category: model.Cellar, Attribute: "height"}).Strategy)
}

func TestSession_Suggest(t *testing.T) {
	s := newSession(t)

	ranked, err := s.Suggest(model.Floor, "width", model.SourceMethod)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "linesOfCode", ranked[0].Property.Name)

	_, err = s.Suggest(model.Floor, "colour", model.SourceMethod)
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

type failingSettings struct{ err error }

func (f failingSettings) ReadSettings() (*settings.Settings, error) { return nil, f.err }

type failingCollector struct{ err error }

func (f failingCollector) Properties(string) (catalog.Properties, error) { return nil, f.err }

func TestOpen_ConfigFallback(t *testing.T) {
	tests := []struct {
		name   string
		reader settings.Reader
		kind   error
	}{
		{"missing file", settings.File(filepath.Join(t.TempDir(), "none.yaml")), settings.ErrConfigNotFound},
		{"bad format", failingSettings{&settings.ConfigError{Path: "x", Kind: settings.ErrBadConfigFormat}}, settings.ErrBadConfigFormat},
		{"nil settings", settings.Fixed{}, settings.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Open(Options{Settings: tt.reader})

			assert.ErrorIs(t, s.ConfigErr(), tt.kind)
			notices := s.Notices()
			assert.True(t, notices.HasCode(diagnostic.CodeConfigFallback))
			assert.Equal(t, settings.Default().Slots(model.Floor), s.AttributeSlots(model.Floor))
		})
	}
}

func TestOpen_SaveWithFallbackSettings(t *testing.T) {
	s := Open(Options{
		Settings:  settings.File(filepath.Join(t.TempDir(), "none.yaml")),
		Collector: catalog.Static{model.SourceMethod: {{Name: "NII", Type: compat.PropInt}}},
	})
	require.Error(t, s.ConfigErr())

	strategy, err := s.Bind(model.Floor, "torches", model.SourceMethod, "NII")
	require.NoError(t, err)
	assert.Equal(t, compat.Quantize, strategy)

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, s.Save(path))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_DataDegraded(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		s := Open(Options{Collector: catalog.FileCollector{}, DataPath: filepath.Join(t.TempDir(), "none.yaml")})

		assert.ErrorIs(t, s.DataErr(), catalog.ErrDataNotFound)
		notices := s.Notices()
		assert.True(t, notices.HasCode(diagnostic.CodeDataNotFound))
		assert.Empty(t, s.SourceProperties(model.SourceMethod))
		assert.NoError(t, s.ConfigErr())
	})

	t.Run("other failure", func(t *testing.T) {
		s := Open(Options{Collector: failingCollector{errors.New("boom")}})

		assert.Error(t, s.DataErr())
		notices := s.Notices()
		assert.True(t, notices.HasCode(diagnostic.CodeBadCatalog))
	})

	t.Run("no collector", func(t *testing.T) {
		s := Open(Options{})

		assert.NoError(t, s.DataErr())
		notices := s.Notices()
		assert.Zero(t, notices.Len())
		assert.NotNil(t, s.Resolver())
	})
}
