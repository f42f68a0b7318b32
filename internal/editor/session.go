package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"metric-mapper/internal/catalog"
	"metric-mapper/internal/compat"
	"metric-mapper/internal/diagnostic"
	"metric-mapper/internal/logging"
	"metric-mapper/internal/mapping"
	"metric-mapper/internal/match"
	"metric-mapper/internal/model"
	"metric-mapper/internal/settings"
)

// Options configures Open.
type Options struct {
	// Settings supplies the displayed attributes. Nil means settings.Default().
	Settings settings.Reader
	// Collector and DataPath supply the available metrics. A nil Collector
	// opens the session with no metrics.
	Collector catalog.Collector
	DataPath  string
	// Resolver defaults to compat.Standard().
	Resolver *compat.Resolver
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Session is one editing session over an in-memory mapping document.
type Session struct {
	resolver  *compat.Resolver
	settings  *settings.Settings
	props     catalog.Properties
	bindings  map[model.Slot]mapping.Binding
	resources []string

	notices   diagnostic.Diagnostics
	configErr error
	dataErr   error
	log       *slog.Logger
}

// Open starts a session. Collaborator failures never fail Open:
//
//   - unreadable or malformed settings: the default attribute set from
//     settings.Default is used and a config_fallback warning is recorded;
//   - missing or unreadable analysis data: the session has no metrics and a
//     data_not_found (or bad_catalog) warning is recorded.
//
// ConfigErr and DataErr return the underlying errors.
func Open(opts Options) *Session {
	s := &Session{
		resolver: opts.Resolver,
		bindings: make(map[model.Slot]mapping.Binding),
		props:    catalog.Properties{},
		log:      logging.OrDiscard(opts.Logger),
	}

	if s.resolver == nil {
		s.resolver = compat.Standard()
	}

	s.loadSettings(opts.Settings)
	s.loadProperties(opts.Collector, opts.DataPath)

	return s
}

func (s *Session) loadSettings(reader settings.Reader) {
	if reader == nil {
		s.settings = settings.Default()
		return
	}

	loaded, err := reader.ReadSettings()
	if err == nil && loaded == nil {
		err = &settings.ConfigError{Path: "<reader>", Kind: settings.ErrConfigNotFound}
	}

	if err != nil {
		// Fallback policy: keep editing with the documented default set.
		s.settings = settings.Default()
		s.configErr = err
		s.log.Warn("settings unusable, using default attributes", "error", err)
		s.notices.AddWarning(diagnostic.CodeConfigFallback,
			fmt.Sprintf("settings could not be loaded (%v); using default attributes", err), "")

		return
	}

	s.settings = loaded
}

func (s *Session) loadProperties(collector catalog.Collector, path string) {
	if collector == nil {
		return
	}

	props, err := collector.Properties(path)
	if err != nil {
		// Degraded mode: no metrics this session.
		s.dataErr = err

		code := diagnostic.CodeBadCatalog
		if errors.Is(err, catalog.ErrDataNotFound) {
			code = diagnostic.CodeDataNotFound
		}

		s.log.Warn("analysis data unavailable, no metrics to map", "path", path, "error", err)
		s.notices.AddWarning(code, fmt.Sprintf("analysis data could not be loaded: %v", err), "")

		return
	}

	s.props = props
	s.log.Debug("analysis data loaded", "path", path, "element_types", len(props))
}

// ConfigErr returns the settings error that forced the default attribute
// set, or nil.
func (s *Session) ConfigErr() error { return s.configErr }

// DataErr returns the error that left the session without metrics, or nil.
func (s *Session) DataErr() error { return s.dataErr }

// Notices returns the notices recorded so far.
func (s *Session) Notices() diagnostic.Diagnostics { return s.notices }

// Resolver returns the resolver the session binds with.
func (s *Session) Resolver() *compat.Resolver { return s.resolver }

// AttributeSlots returns the attributes of c in display order.
func (s *Session) AttributeSlots(c model.Category) []model.AttributeSlot {
	return s.settings.Slots(c)
}

// SourceProperties returns the metrics of an element type in file order.
func (s *Session) SourceProperties(source model.SourceType) []model.Property {
	return slices.Clone(s.props[source])
}

// Bind binds the metric source.property to the slot c.attribute and
// returns the conversion the renderer has to apply. An existing binding of
// the slot is replaced. When the kinds are incompatible (or the slot or
// metric is unknown) Bind returns a *BindError and changes nothing.
//
// Binding source model.SourceResource is the same as BindResource.
func (s *Session) Bind(c model.Category, attribute string, source model.SourceType, property string) (compat.Strategy, error) {
	slot := model.Slot{Category: c, Attribute: attribute}
	ref := model.PropertyRef{Source: source, Name: property}

	if source == model.SourceResource {
		if err := s.BindResource(c, attribute, property); err != nil {
			return compat.CannotAssign, err
		}

		return compat.NoConversion, nil
	}

	attrType, err := s.slotType(slot, ref)
	if err != nil {
		return compat.CannotAssign, err
	}

	prop, ok := s.props.Lookup(source, property)
	if !ok {
		return compat.CannotAssign, &BindError{
			Kind:        ErrUnknownProperty,
			Slot:        slot,
			Source:      ref,
			AttrType:    attrType,
			Suggestions: match.Closest(property, s.props.Names(source), 3, match.DefaultSuggestThreshold),
		}
	}

	strategy := s.resolver.Resolve(attrType, prop.Type)
	if !strategy.CanAssign() {
		return compat.CannotAssign, &BindError{
			Kind:     ErrIncompatible,
			Slot:     slot,
			Source:   ref,
			AttrType: attrType,
			PropType: prop.Type,
		}
	}

	s.set(slot, mapping.Binding{Attribute: attribute, Source: source, Property: property, Strategy: strategy})

	return strategy, nil
}

// BindResource binds a previously added resource tag to the slot
// c.attribute, replacing any existing binding.
func (s *Session) BindResource(c model.Category, attribute, resource string) error {
	slot := model.Slot{Category: c, Attribute: attribute}
	ref := model.PropertyRef{Source: model.SourceResource, Name: resource}

	if _, err := s.slotType(slot, ref); err != nil {
		return err
	}

	if !slices.Contains(s.resources, resource) {
		return &BindError{
			Kind:        ErrUnknownResource,
			Slot:        slot,
			Source:      ref,
			Suggestions: match.Closest(resource, s.resources, 3, match.DefaultSuggestThreshold),
		}
	}

	s.set(slot, mapping.Binding{
		Attribute: attribute,
		Source:    model.SourceResource,
		Property:  resource,
		Strategy:  compat.NoConversion,
	})

	return nil
}

func (s *Session) slotType(slot model.Slot, ref model.PropertyRef) (compat.AttributeType, error) {
	if !s.settings.Displays(slot.Category, slot.Attribute) {
		var names []string
		for _, a := range s.settings.Slots(slot.Category) {
			names = append(names, a.Name)
		}

		return "", &BindError{
			Kind:        ErrUnknownSlot,
			Slot:        slot,
			Source:      ref,
			Suggestions: match.Closest(slot.Attribute, names, 3, match.DefaultSuggestThreshold),
		}
	}

	t, _ := s.settings.AttributeType(slot.Attribute)

	return t, nil
}

func (s *Session) set(slot model.Slot, b mapping.Binding) {
	if prev, ok := s.bindings[slot]; ok {
		s.log.Debug("slot rebound", "slot", slot.String(),
			"previous", refOf(prev).String(), "property", refOf(b).String(), "strategy", b.Strategy.String())
	} else {
		s.log.Debug("slot bound", "slot", slot.String(),
			"property", refOf(b).String(), "strategy", b.Strategy.String())
	}

	s.bindings[slot] = b
}

// Unbind clears the slot c.attribute. Unbinding an unbound slot is a no-op.
func (s *Session) Unbind(c model.Category, attribute string) {
	slot := model.Slot{Category: c, Attribute: attribute}
	if _, ok := s.bindings[slot]; !ok {
		return
	}

	delete(s.bindings, slot)
	s.log.Debug("slot unbound", "slot", slot.String())
}

// Binding returns the state of a slot.
func (s *Session) Binding(slot model.Slot) SlotState {
	b, ok := s.bindings[slot]
	if !ok {
		return SlotState{}
	}

	return SlotState{Bound: true, Source: refOf(b), Strategy: b.Strategy}
}

// AddResource selects a resource tag. Adding it again is a no-op.
func (s *Session) AddResource(id string) {
	if id == "" || slices.Contains(s.resources, id) {
		return
	}

	s.resources = append(s.resources, id)
	s.log.Debug("resource added", "resource", id)
}

// RemoveResource deselects a resource tag and clears every slot bound to
// it. Removing an absent tag is a no-op.
func (s *Session) RemoveResource(id string) {
	i := slices.Index(s.resources, id)
	if i < 0 {
		return
	}

	s.resources = slices.Delete(s.resources, i, i+1)

	for slot, b := range s.bindings {
		if b.IsResource() && b.Property == id {
			delete(s.bindings, slot)
			s.log.Debug("slot unbound with its resource", "slot", slot.String(), "resource", id)
		}
	}

	s.log.Debug("resource removed", "resource", id)
}

// Resources returns the selected resource tags in insertion order.
func (s *Session) Resources() []string {
	return slices.Clone(s.resources)
}

// Document returns the current bindings and resources as a mapping
// document. Bound slots appear in display order; categories without bound
// slots are omitted.
func (s *Session) Document() *mapping.Document {
	d := &mapping.Document{}

	for _, c := range model.Categories() {
		var bound []mapping.Binding

		for _, a := range s.settings.Slots(c) {
			if b, ok := s.bindings[model.Slot{Category: c, Attribute: a.Name}]; ok {
				bound = append(bound, b)
			}
		}

		if len(bound) > 0 {
			d.Linkings = append(d.Linkings, mapping.Linking{Category: c, Bindings: bound})
		}
	}

	if len(s.resources) > 0 {
		d.Resources = slices.Clone(s.resources)
	}

	return d
}

// Save writes the current document to path. On failure the session keeps
// its state so the save can be retried; the error matches mapping.ErrIO
// when the destination could not be written.
func (s *Session) Save(path string) error {
	d := s.Document()

	if err := mapping.Save(d, path); err != nil {
		s.log.Error("mapping file not saved", "path", path, "error", err)
		return err
	}

	s.log.Info("mapping file saved", "path", path, "bindings", d.Len(), "resources", len(d.Resources))

	return nil
}

// Apply loads an existing document into the session: its resources are
// added, then each binding is replayed through Bind or BindResource.
// Bindings that no longer fit the current settings or metrics are skipped
// with a stale_binding warning; bindings whose strategy changed get a
// strategy_changed note. The returned notices are also recorded on the
// session.
func (s *Session) Apply(d *mapping.Document) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	for _, id := range d.Resources {
		s.AddResource(id)
	}

	for _, e := range d.Entries() {
		slot := e.Slot()

		if e.IsResource() {
			if err := s.BindResource(e.Category, e.Attribute, e.Property); err != nil {
				msg, suggestions := describe(err)
				res.AddWarning(diagnostic.CodeStaleBinding, msg, slot.String(), suggestions...)
			}

			continue
		}

		strategy, err := s.Bind(e.Category, e.Attribute, e.Source, e.Property)
		if err != nil {
			msg, suggestions := describe(err)
			res.AddWarning(diagnostic.CodeStaleBinding, msg, slot.String(), suggestions...)

			continue
		}

		if strategy != e.Strategy {
			res.AddInfo(diagnostic.CodeStrategyChanged,
				fmt.Sprintf("conversion of %s.%s is now %s (was %s)", e.Source, e.Property, strategy, e.Strategy),
				slot.String())
		}
	}

	s.notices.Merge(res)

	return res
}

// Suggest ranks the metrics of an element type that can feed the slot
// c.attribute, best first.
func (s *Session) Suggest(c model.Category, attribute string, source model.SourceType) (match.CandidateList, error) {
	slot := model.Slot{Category: c, Attribute: attribute}

	attrType, err := s.slotType(slot, model.PropertyRef{Source: source})
	if err != nil {
		return nil, err
	}

	return match.RankCandidates(model.AttributeSlot{Name: attribute, Type: attrType}, s.props[source], s.resolver), nil
}

// describe splits a bind error into a notice message and its suggestions.
func describe(err error) (string, []string) {
	var bindErr *BindError
	if errors.As(err, &bindErr) {
		return bindErr.message(), bindErr.Suggestions
	}

	return err.Error(), nil
}

func refOf(b mapping.Binding) model.PropertyRef {
	return model.PropertyRef{Source: b.Source, Name: b.Property}
}
