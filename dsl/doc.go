// Package dsl provides the built-in value kinds and the schema builder.
//
// Overview
//   - Kind builders: Bool(), Int(), Float(), String(), Choice(...), Color(),
//     DateTime()/Date()/Time(), Path()/File()/Directory(), Variant(),
//     Tuple()/List()/Dict(). Every builder chains Default/Label/ReadOnly/Hidden
//     and its own parameters, then Build()/MustBuild().
//   - Build fails with formskema.ErrInvalidDefault when a kind rejects its own
//     default, so a built ValueType always accepts Default().
//   - Object(): ordered schema builder; Field/FieldOf then Build()/MustBuild().
//
// Built types are exported (BoolType, IntType, ...) so that editors can read
// their parameters. They also implement formskema.Normalizer,
// formskema.TextCodec and formskema.JSONSchemaer.
//
// File layout (roles)
//   - builder.go: shared builder state and numeric helpers.
//   - primitives.go: Bool, Int, Float, String, Choice.
//   - color.go: Color and the SVG color keyword table.
//   - datetime.go: DateTime, Date, Time.
//   - path.go: Path, File, Directory.
//   - variant.go: Variant, Tuple, List, Dict (literal round-trip).
//   - object_builder.go: Object schema builder.
//
// Example
//
//	s := dsl.Object().
//	    FieldOf("name", dsl.String().Label("Name")).
//	    FieldOf("count", dsl.Int().Min(0).Max(10).Default(1)).
//	    FieldOf("mode", dsl.Choice("fast", "safe").Default(1)).
//	    FieldOf("tint", dsl.Color().Default("teal")).
//	    MustBuild()
//	obj := s.DefaultObject() // {"name": "", "count": 1, "mode": "safe", "tint": "teal"}
package dsl
