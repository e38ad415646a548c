package bind_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/bind"
)

func TestNewTarget(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params []bind.Param
		err    error
	}{
		{"Zero", nil, nil},
		{
			"Valid",
			[]bind.Param{
				bind.QueryParam("username", bind.String),
				bind.QueryParam("age", bind.Int, bind.Default("-1")),
				bind.HeaderParam("host", bind.String),
				bind.CookieParam("myCookie", bind.String, bind.NotRequired()),
				bind.PathParam("userId", bind.String),
			},
			nil,
		},
		{"No-Name", []bind.Param{bind.QueryParam("", bind.String)}, trailhead.ErrBadConfig},
		{"Unknown-Kind", []bind.Param{bind.QueryParam("a", bind.Kind(0))}, trailhead.ErrBadConfig},
		{
			"Duplicate",
			[]bind.Param{bind.QueryParam("a", bind.String), bind.HeaderParam("a", bind.String)},
			trailhead.ErrBadConfig,
		},
		{"Bad-Int-Default", []bind.Param{bind.QueryParam("age", bind.Int, bind.Default("old"))}, trailhead.ErrBadConfig},
		{"Bad-Bool-Default", []bind.Param{bind.QueryParam("ok", bind.Bool, bind.Default("maybe"))}, trailhead.ErrBadConfig},
		{"Lax-OptionalInt-Default", []bind.Param{bind.QueryParam("age", bind.OptionalInt, bind.Default("old"))}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			target, err := bind.NewTarget(tc.params...)

			// Assert
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Nil(t, target)
				return
			}

			require.Nil(t, err)
			require.Equal(t, len(tc.params), len(target.Params()))
		})
	}
}

func TestTargetCheckVars(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(
		bind.PathParam("userId", bind.String),
		bind.QueryParam("q", bind.String, bind.NotRequired()),
	)
	require.Nil(t, err)

	// Act + Assert
	require.Nil(t, target.CheckVars([]string{"userId"}))
	require.ErrorIs(t, target.CheckVars(nil), trailhead.ErrBadConfig)
	require.ErrorIs(t, target.CheckVars([]string{"userID"}), trailhead.ErrBadConfig)

	var nilTarget *bind.Target
	require.Nil(t, nilTarget.CheckVars(nil))
}

func TestTargetBindMissing(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(
		bind.QueryParam("username", bind.String),
		bind.QueryParam("age", bind.Int),
	)
	require.Nil(t, err)

	for _, query := range []url.Values{
		{},
		{"age": {"20"}},
		{"Username": {"userA"}, "age": {"20"}},
	} {
		// Act
		vals, err := target.Bind(bind.Request{Query: query})

		// Assert
		require.Nil(t, vals)

		var missing *bind.MissingParameterError
		require.ErrorAs(t, err, &missing)
		require.ErrorIs(t, err, trailhead.ErrMissingData)
		require.Equal(t, "username", missing.Name)
		require.Equal(t, bind.SourceQuery, missing.Source)
		require.Equal(t, http.StatusBadRequest, bind.StatusCode(err))
	}
}

func TestTargetBindDefault(t *testing.T) {
	for _, tc := range []struct {
		name     string
		query    url.Values
		expected bind.Values
	}{
		{"Absent", url.Values{}, bind.Values{"username": "guest", "age": -1, "nick": "nobody"}},
		{"Empty", url.Values{"username": {""}, "age": {""}}, bind.Values{"username": "guest", "age": -1, "nick": "nobody"}},
		{
			"Present",
			url.Values{"username": {"userA"}, "age": {"20"}, "nick": {"a"}},
			bind.Values{"username": "userA", "age": 20, "nick": "a"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			target, err := bind.NewTarget(
				bind.QueryParam("username", bind.String, bind.Default("guest")),
				bind.QueryParam("age", bind.Int, bind.NotRequired(), bind.Default("-1")),
				bind.QueryParam("nick", bind.String, bind.Default("nobody")),
			)
			require.Nil(t, err)

			// Act
			actual, err := target.Bind(bind.Request{Query: tc.query})

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestTargetBindEmptyString(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(bind.QueryParam("username", bind.String))
	require.Nil(t, err)

	// Act
	actual, err := target.Bind(bind.Request{Query: url.Values{"username": {""}}})

	// Assert
	require.Nil(t, err)
	require.True(t, actual.IsSet("username"))
	require.Equal(t, "", actual.String("username"))
}

func TestTargetBindOptionalInt(t *testing.T) {
	for _, tc := range []struct {
		name     string
		query    url.Values
		expected bind.Optional[int]
	}{
		{"Absent", url.Values{}, bind.Optional[int]{}},
		{"Empty", url.Values{"age": {""}}, bind.Optional[int]{}},
		{"Unparsable", url.Values{"age": {"twenty"}}, bind.Optional[int]{}},
		{"Valid", url.Values{"age": {"20"}}, bind.Some(20)},
		{"Zero", url.Values{"age": {"0"}}, bind.Some(0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			target, err := bind.NewTarget(bind.QueryParam("age", bind.OptionalInt, bind.NotRequired()))
			require.Nil(t, err)

			// Act
			actual, err := target.Bind(bind.Request{Query: tc.query})

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, actual.OptionalInt("age"))
		})
	}
}

func TestTargetBindOptionalIntRequired(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(bind.QueryParam("age", bind.OptionalInt))
	require.Nil(t, err)

	// Act
	_, err = target.Bind(bind.Request{Query: url.Values{}})

	// Assert
	var missing *bind.MissingParameterError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "age", missing.Name)
	require.Equal(t, http.StatusBadRequest, bind.StatusCode(err))

	// Act
	actual, err := target.Bind(bind.Request{Query: url.Values{"age": {"twenty"}}})

	// Assert
	require.Nil(t, err)
	require.Equal(t, bind.Optional[int]{}, actual.OptionalInt("age"))
}

func TestTargetBindCoercion(t *testing.T) {
	for _, tc := range []struct {
		name  string
		param bind.Param
		query url.Values
		raw   string
	}{
		{"Int-Unparsable", bind.QueryParam("age", bind.Int), url.Values{"age": {"twenty"}}, "twenty"},
		{"Int-Empty", bind.QueryParam("age", bind.Int), url.Values{"age": {""}}, ""},
		{"Int-Absent-Not-Required", bind.QueryParam("age", bind.Int, bind.NotRequired()), url.Values{}, ""},
		{"Bool-Unparsable", bind.QueryParam("ok", bind.Bool), url.Values{"ok": {"maybe"}}, "maybe"},
		{"Float-Unparsable", bind.QueryParam("f", bind.Float), url.Values{"f": {"1.2.3"}}, "1.2.3"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			target, err := bind.NewTarget(tc.param)
			require.Nil(t, err)

			// Act
			_, err = target.Bind(bind.Request{Query: tc.query})

			// Assert
			var coerce *bind.TypeCoercionError
			require.ErrorAs(t, err, &coerce)
			require.ErrorIs(t, err, trailhead.ErrNotValid)
			require.Equal(t, tc.param.Name, coerce.Name)
			require.Equal(t, tc.param.Kind, coerce.Kind)
			require.Equal(t, tc.raw, coerce.Raw)
			require.Equal(t, http.StatusInternalServerError, bind.StatusCode(err))
		})
	}
}

func TestTargetBindFirstValue(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(
		bind.QueryParam("username", bind.String),
		bind.QueryParam("tag", bind.Strings),
	)
	require.Nil(t, err)

	// Act
	actual, err := target.Bind(bind.Request{Query: url.Values{
		"username": {"userA", "userB"},
		"tag":      {"b", "a", "b"},
	}})

	// Assert
	require.Nil(t, err)
	require.Equal(t, "userA", actual.String("username"))
	require.Equal(t, []string{"b", "a", "b"}, actual.Strings("tag"))
}

func TestTargetBindHeader(t *testing.T) {
	for _, name := range []string{"host", "Host", "HOST"} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			r, err := http.NewRequest(http.MethodGet, "http://example.com/headers", nil)
			require.Nil(t, err)

			br, err := bind.NewRequest(r, nil)
			require.Nil(t, err)

			target, err := bind.NewTarget(bind.HeaderParam(name, bind.String))
			require.Nil(t, err)

			// Act
			actual, err := target.Bind(br)

			// Assert
			require.Nil(t, err)
			require.Equal(t, "example.com", actual.String(name))
		})
	}
}

func TestTargetBindMultiValueHeader(t *testing.T) {
	// Arrange
	header := make(http.Header)
	header.Add("X-Forwarded-For", "10.0.0.3")
	header.Add("x-forwarded-for", "10.0.0.1")
	header.Add("X-FORWARDED-FOR", "10.0.0.3")

	target, err := bind.NewTarget(bind.HeaderParam("x-forwarded-for", bind.Strings))
	require.Nil(t, err)

	// Act
	actual, err := target.Bind(bind.Request{Header: header})

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"10.0.0.3", "10.0.0.1", "10.0.0.3"}, actual.Strings("x-forwarded-for"))
}

func TestTargetBindCookie(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(bind.CookieParam("myCookie", bind.String, bind.NotRequired()))
	require.Nil(t, err)

	// Act
	absent, err := target.Bind(bind.Request{})

	// Assert
	require.Nil(t, err)
	require.False(t, absent.IsSet("myCookie"))
	require.Equal(t, "", absent.String("myCookie"))

	// Act
	present, err := target.Bind(bind.Request{Cookies: map[string]string{"myCookie": "choco"}})

	// Assert
	require.Nil(t, err)
	require.Equal(t, "choco", present.String("myCookie"))

	// Arrange
	required, err := bind.NewTarget(bind.CookieParam("myCookie", bind.String))
	require.Nil(t, err)

	// Act
	_, err = required.Bind(bind.Request{})

	// Assert
	require.ErrorIs(t, err, trailhead.ErrMissingData)
}

func TestTargetBindPath(t *testing.T) {
	// Arrange
	target, err := bind.NewTarget(bind.PathParam("userId", bind.Int))
	require.Nil(t, err)

	// Act
	actual, err := target.Bind(bind.Request{Path: map[string]string{"userId": "7"}})

	// Assert
	require.Nil(t, err)
	require.Equal(t, 7, actual.Int("userId"))

	// Act
	_, err = target.Bind(bind.Request{})

	// Assert
	require.ErrorIs(t, err, trailhead.ErrBadConfig)
	require.Equal(t, http.StatusInternalServerError, bind.StatusCode(err))
}

func TestTargetBindNil(t *testing.T) {
	// Arrange
	var target *bind.Target

	// Act
	actual, err := target.Bind(bind.Request{})

	// Assert
	require.Nil(t, err)
	require.Empty(t, actual)
}
