// Package formskema provides a schema-validated object model for generated
// data-entry dialogs:
//
// - ValueType: the admissible values, default and presentation flags of a field
// - Schema: an immutable, ordered key to ValueType mapping
// - Object validation and normalization (missing keys, unknown keys, per-field checks)
// - A stable error model: typed errors matching sentinels, and Issues for presentation
//
// Design policy:
// - The root package holds the model and pure functions only; it performs no I/O.
// - Built-in kinds and the schema builder live under dsl/, the collection
//   manager under collection/, editor contracts under session/.
//
// Typical usage:
//
//	s := dsl.Object().
//		Field("name", dsl.String().Default("").MustBuild()).
//		Field("age", dsl.Int().Min(0).Default(18).MustBuild()).
//		MustBuild()
//	obj := formskema.FillMissing(s, formskema.Object{"name": "Ann"}, true)
//	if r := formskema.ValidateObject(s, obj, formskema.ValidateOpt{}); !r.OK() {
//		return r.Err()
//	}
package formskema
