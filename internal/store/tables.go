package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/quizprep/ent/schema"
)

const (
	llmRequestEventsTable = "llm_request_events"
	roundEventsTable      = "round_events"
)

var (
	llmRequestEvents = mustEntity(llmRequestEventsTable, entschema.LLMRequestEvent{})
	roundEvents      = mustEntity(roundEventsTable, entschema.RoundEvent{})
)

// Tables returns the migration tables derived from the ent schema
// definitions in ent/schema.
func Tables() []*schema.Table {
	return []*schema.Table{llmRequestEvents.table, roundEvents.table}
}

// ValidationError is returned when a value fails a schema validator or a
// required field is missing.
type ValidationError struct {
	Name string
	err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator failed for field %q: %v", e.Name, e.err)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// entity pairs an ent schema's field descriptors with its migration table.
type entity struct {
	table  *schema.Table
	fields []*field.Descriptor
	byName map[string]*field.Descriptor
}

// mustEntity converts the field and index descriptors of an ent schema
// (mixins first) into an entity with an auto-increment "id" key. It panics
// on descriptor errors, which only a broken schema package can produce.
func mustEntity(name string, s ent.Interface) *entity {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	e := &entity{
		table: &schema.Table{
			Name:       name,
			Columns:    []*schema.Column{id},
			PrimaryKey: []*schema.Column{id},
		},
		byName: make(map[string]*field.Descriptor),
	}

	cols := map[string]*schema.Column{"id": id}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			panic(fmt.Sprintf("store: schema %s field %q: %v", name, d.Name, d.Err))
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		for _, en := range d.Enums {
			col.Enums = append(col.Enums, en.V)
		}
		// Function defaults are evaluated per insert by create.
		switch v := d.Default.(type) {
		case string, bool, int, int64, float64:
			col.Default = v
		}
		e.table.Columns = append(e.table.Columns, col)
		e.fields = append(e.fields, d)
		e.byName[d.Name] = d
		cols[d.Name] = col
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		ic := make([]*schema.Column, 0, len(d.Fields))
		for _, f := range d.Fields {
			if c, ok := cols[f]; ok {
				ic = append(ic, c)
			}
		}
		if len(ic) == 0 {
			continue
		}
		e.table.Indexes = append(e.table.Indexes, &schema.Index{
			Name:    name + "_" + strings.Join(d.Fields, "_"),
			Unique:  d.Unique,
			Columns: ic,
		})
	}

	return e
}

// columns returns "id" followed by the schema fields in declaration order.
func (e *entity) columns() []string {
	out := make([]string, 0, len(e.table.Columns))
	for _, c := range e.table.Columns {
		out = append(out, c.Name)
	}
	return out
}

// create starts an insert for the entity.
func (e *entity) create() *createBuilder {
	return &createBuilder{e: e, values: make(map[string]any)}
}

// createBuilder collects field values for one row and applies the schema's
// defaults, enums and validators when the statement is built.
type createBuilder struct {
	e      *entity
	values map[string]any
}

func (c *createBuilder) set(name string, v any) *createBuilder {
	c.values[name] = v
	return c
}

// query builds the INSERT statement. Unset fields take their schema default;
// a required field with no default is an error.
func (c *createBuilder) query() (string, []any, error) {
	for name := range c.values {
		if _, ok := c.e.byName[name]; !ok {
			return "", nil, fmt.Errorf("unknown field %q for %s", name, c.e.table.Name)
		}
	}

	cols := make([]string, 0, len(c.e.fields))
	vals := make([]any, 0, len(c.e.fields))
	for _, d := range c.e.fields {
		v, ok := c.values[d.Name]
		if !ok {
			switch {
			case d.Default != nil:
				v = defaultValue(d.Default)
			case d.Optional:
				continue
			default:
				return "", nil, &ValidationError{Name: d.Name, err: fmt.Errorf("missing required field")}
			}
		}
		if err := validate(d, v); err != nil {
			return "", nil, &ValidationError{Name: d.Name, err: err}
		}
		cols = append(cols, d.Name)
		vals = append(vals, v)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(c.e.table.Name).
		Columns(cols...).
		Values(vals...).
		Query()
	return query, args, nil
}

// defaultValue calls function defaults such as time.Now and returns
// constant defaults unchanged.
func defaultValue(def any) any {
	rv := reflect.ValueOf(def)
	if rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		return rv.Call(nil)[0].Interface()
	}
	return def
}

func validate(d *field.Descriptor, v any) error {
	if len(d.Enums) > 0 {
		s := fmt.Sprint(v)
		found := false
		for _, en := range d.Enums {
			if en.V == s {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid enum value %q", s)
		}
	}

	arg := reflect.ValueOf(v)
	if !arg.IsValid() {
		if d.Optional || len(d.Validators) == 0 {
			return nil
		}
		return fmt.Errorf("nil value")
	}
	for _, fn := range d.Validators {
		rv := reflect.ValueOf(fn)
		if rv.Kind() != reflect.Func || rv.Type().NumIn() != 1 {
			continue
		}
		in := rv.Type().In(0)
		a := arg
		if !a.Type().AssignableTo(in) {
			if !a.Type().ConvertibleTo(in) {
				return fmt.Errorf("value of type %s does not match %s", a.Type(), in)
			}
			a = a.Convert(in)
		}
		if err, _ := rv.Call([]reflect.Value{a})[0].Interface().(error); err != nil {
			return err
		}
	}
	return nil
}
