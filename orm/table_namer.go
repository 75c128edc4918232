package orm

import (
	"reflect"

	"newsstand/internal/naming"
)

// TableNamer can be implemented by entity structs to override the
// auto-derived table name.
type TableNamer interface {
	TableName() string
}

// ResolveTableName returns the table name for type T.
// If T implements TableNamer (value or pointer receiver), that name is
// used; otherwise the pluralized snake_case type name is derived, e.g.
// Magazine → "magazines".
func ResolveTableName[T any]() string {
	var zero T
	if tn, ok := any(&zero).(TableNamer); ok {
		return tn.TableName()
	}
	return naming.TableFor(reflect.TypeOf(zero).Name())
}
