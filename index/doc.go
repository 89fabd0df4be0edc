// Package index implements a hierarchical, namespaced store of typed values.
//
// Every entry is keyed by a fully-qualified name such as
// "/stanley/blanche/height". Short names are resolved against a scope by
// trying the longest enclosing scope first:
//
//	idx := index.New()
//	idx.AddFloat("/stanley/height", 4.5)
//	idx.AddFloat("/stanley/blanche/height", 3.2)
//
//	idx.Resolve("height", "stanley/blanche") // "/stanley/blanche/height"
//	idx.Resolve("height", "stanley/stella")  // "/stanley/height"
//
// A value defined in an outer scope is therefore visible from every inner
// scope that does not define the same name. Names that begin with "/" are
// never searched.
//
// # Overwrite Policy
//
// Inserting under a name that already exists is governed by the [Policy]
// given to [New]. The default [Forbid] reports [ErrOverwriteForbidden];
// [AlwaysOverwrite] replaces the value in place and [NeverOverwrite] leaves
// the original and reports false. Inserting a container over an existing
// container always merges their children.
//
// # Markup
//
// [Index.IngestMarkup] loads entries from markup text. Nested elements
// become nested scopes:
//
//	<stanley>
//	  <height type="float">4.5</height>
//	  <blanche><height type="float">3.2</height></blanche>
//	</stanley>
//
// [Index.Serialize] renders one entry, including container children, in
// the same format.
//
// An Index is not safe for concurrent use.
package index
