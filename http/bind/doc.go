/*
Package bind populates typed values from the untyped data of an HTTP request.

A handler declares up front what it needs from a request.
For independent scalar values, that is a [Target] built from [Param] descriptors:

	t, err := bind.NewTarget(
		bind.QueryParam("username", bind.String, bind.Default("guest")),
		bind.QueryParam("age", bind.OptionalInt, bind.NotRequired()),
		bind.HeaderParam("host", bind.String),
		bind.CookieParam("myCookie", bind.String, bind.NotRequired()),
	)

For a plain record type, that is a [Record] built from [Field] accessors:

	rec, err := bind.NewRecord(
		bind.StringField("username", func(d *HelloData) *string { return &d.Username }),
		bind.IntField("age", func(d *HelloData) *int { return &d.Age }),
	)

Both are constructed once, when routes are registered, and are safe for concurrent use afterwards.
Binding is a single pass over a [Request] with no I/O of its own.

# Binding rules

A [Param] is looked up in its [Source]. Then:

  - absent, required, no default: [*MissingParameterError]
  - absent (or empty) with a default: the default literal is used, required or not
  - present but not coercible into an [Int] or [Bool]: [*TypeCoercionError]
  - [OptionalInt] fails only when required and absent; otherwise absent or unparsable
    values bind as an empty [Optional]
  - an explicitly empty [String] binds as "", which is distinct from absent

Header lookup is case-insensitive and, for [Strings], keeps every value in request order.
A cookie yields at most one value.

A [Record] matches field names against query and form values case-sensitively.
Absent fields keep their zero value.
Binding a [Record] is all-or-nothing unless [Record.AllowPartial] opts into assigning
fields up until the first failure.

# Errors

[StatusCode] maps a binding failure onto an HTTP status:
a missing parameter is the client's fault (400),
a value that cannot become a non-nullable primitive is the server's (500).
*/
package bind
