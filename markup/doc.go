// Package markup parses tagged markup text into an immutable tree of nodes.
//
// The wire format is XML-like:
//
//	<stanley>
//	  <height type="float">4.5</height>
//	  <blanche type="container">
//	    <height type="float">3.2</height>
//	  </blanche>
//	</stanley>
//
// [Parse] returns a [Document] whose [Document.Root] is a nameless node
// holding every top-level element. Each [Node] exposes its element name,
// its type attribute, its character data and its child elements. Nodes are
// never modified after parsing, so a Document may be shared and
// re-traversed freely; [ParseCached] relies on this to return the same
// Document for identical input.
package markup
