package cfg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsing(t *testing.T) {
	f := func(name, input string, wantKind ErrorKind) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			_, err := Parse([]byte(input))
			if wantKind == ErrNone {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, wantKind, KindOf(err))
		})
	}

	f("empty_input", "", ErrNone)
	f("whitespace_only", "  \n\t \n", ErrNone)
	f("comments_only", "// a\n/* b\nc */\n", ErrNone)

	// Scalars.
	f("int", "x = 42;", ErrNone)
	f("float", "x = 3.5;", ErrNone)
	f("bool_true", "x = true;", ErrNone)
	f("bool_false", "x = false;", ErrNone)
	f("string", `x = "hi";`, ErrNone)
	f("string_concat", `x = "foo" "bar";`, ErrNone)
	f("several_declarations", "a = 1;\nb = 2.5;\nc = \"s\";", ErrNone)

	// Containers.
	f("empty_array", "x = [];", ErrNone)
	f("array", "x = [1, 2, 3];", ErrNone)
	f("array_trailing_value", "x = [1, 2, 3];", ErrNone)
	f("nested_arrays", "x = [[1], [2, 3]];", ErrNone)
	f("empty_list", "x = ();", ErrNone)
	f("list_mixed", `x = (1, "a", true, 2.5);`, ErrNone)
	f("empty_struct", "x = {};", ErrNone)
	f("struct", "x = { a = 1; b = 2; };", ErrNone)
	f("struct_nested", "a = { b = { c = 1; }; };", ErrNone)
	f("structs_in_array", "x = [{ a = 1; }, { a = 2; }];", ErrNone)
	f("lists_in_list", `x = ((1, 2), ("a"));`, ErrNone)
	f("array_in_struct", "s = { ports = [80, 443]; };", ErrNone)

	// Grammar violations.
	f("missing_semicolon", "x = 1", ErrUnexpectedToken)
	f("missing_eq", "x 1;", ErrUnexpectedToken)
	f("missing_value", "x = ;", ErrUnexpectedToken)
	f("value_without_name", "42;", ErrUnexpectedToken)
	f("identifier_in_array", "x = [a];", ErrUnexpectedToken)
	f("named_member_in_list", "x = (a = 1);", ErrUnexpectedToken)
	f("unnamed_value_in_struct", "x = { 1; };", ErrUnexpectedToken)
	f("unclosed_array", "x = [1, 2", ErrUnexpectedToken)
	f("mismatched_closer", "x = [1);", ErrUnexpectedToken)
	f("stray_closer", "];", ErrUnexpectedToken)
	f("semicolon_in_array", "x = [1; 2];", ErrUnexpectedToken)
	f("double_comma", "x = [1,, 2];", ErrUnexpectedToken)

	// Array homogeneity.
	f("array_heterogeneous", `x = [1, "a"];`, ErrUnexpectedToken)
	f("array_int_then_float", "x = [1, 2.5];", ErrUnexpectedToken)
	f("array_scalar_then_struct", "x = [1, { a = 1; }];", ErrUnexpectedToken)
	f("array_struct_then_scalar", "x = [{ a = 1; }, 2];", ErrUnexpectedToken)

	// Redefinitions.
	f("redefined_top_level", "x = 1; x = 2;", ErrVariableRedefinition)
	f("redefined_struct_member", "x = { a = 1; a = 2; };", ErrVariableRedefinition)
	f("same_name_in_sibling_structs", "x = { a = 1; }; y = { a = 2; };", ErrNone)

	// Lexical errors propagate through the load.
	f("malformed_number", "x = 1.2.3;", ErrUnknownToken)
	f("unterminated_string", `x = "oops`, ErrUnknownToken)
	f("bare_slash", "x = 1 / 2;", ErrUnknownToken)
}

func TestParseScalarValues(t *testing.T) {
	c, err := Parse([]byte(`
		answer = 42;
		ratio = 3.5;
		on = true;
		off = false;
		text = "a\nb";
	`))
	require.NoError(t, err)

	g := c.Global()
	require.Equal(t, int64(42), g.Int("answer"))
	require.Equal(t, 3.5, g.Float("ratio"))
	require.True(t, g.Bool("on"))
	require.False(t, g.Bool("off"))
	require.Equal(t, "a\nb", g.String("text"))
}

func TestParseStringConcatenation(t *testing.T) {
	c, err := Parse([]byte(`x = "foo" "bar";`))
	require.NoError(t, err)
	require.Equal(t, "foobar", c.Global().String("x"))

	// Concatenation works across lines and comments too.
	c, err = Parse([]byte("x = \"foo\" // first half\n\"bar\";"))
	require.NoError(t, err)
	require.Equal(t, "foobar", c.Global().String("x"))
}

func TestParseArray(t *testing.T) {
	c, err := Parse([]byte("x = [10, 20, 30];"))
	require.NoError(t, err)

	arr := c.Global().Array("x")
	require.NotNil(t, arr)
	require.Equal(t, 3, arr.Len())
	require.Equal(t, int64(10), arr.IntAt(0))
	require.Equal(t, int64(20), arr.IntAt(1))
	require.Equal(t, int64(30), arr.IntAt(2))
	require.Equal(t, TypeInt, arr.TypeAt(0))
	// Array elements carry no name.
	require.Equal(t, "", arr.NameAt(0))
}

func TestParseList(t *testing.T) {
	c, err := Parse([]byte(`x = (1, "a", true, 2.5);`))
	require.NoError(t, err)

	l := c.Global().List("x")
	require.NotNil(t, l)
	require.Equal(t, 4, l.Len())
	require.Equal(t, int64(1), l.IntAt(0))
	require.Equal(t, "a", l.StringAt(1))
	require.True(t, l.BoolAt(2))
	require.Equal(t, 2.5, l.FloatAt(3))

	require.Equal(t, TypeInt, l.TypeAt(0))
	require.Equal(t, TypeString, l.TypeAt(1))
	require.Equal(t, TypeBool, l.TypeAt(2))
	require.Equal(t, TypeFloat, l.TypeAt(3))
}

func TestParseNestedStructs(t *testing.T) {
	c, err := Parse([]byte("a = { b = { c = 1; }; };"))
	require.NoError(t, err)

	g := c.Global()
	require.Equal(t, int64(1), g.Struct("a").Struct("b").Int("c"))
	require.Equal(t, "b", g.Struct("a").NameAt(0))
}

func TestParseStructMembersKeepOrder(t *testing.T) {
	c, err := Parse([]byte("s = { one = 1; two = 2; three = 3; };"))
	require.NoError(t, err)

	s := c.Global().Struct("s")
	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"one", "two", "three"},
		[]string{s.NameAt(0), s.NameAt(1), s.NameAt(2)})
}

func TestParseCommentsOnlyDocument(t *testing.T) {
	c, err := Parse([]byte("// just a comment\n/* and\nanother */\n   \n"))
	require.NoError(t, err)
	require.Equal(t, 0, c.Global().Len())
}

func TestParseHeterogeneousArrayErrorPosition(t *testing.T) {
	_, err := Parse([]byte(`x = [1, "a"];`))
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrUnexpectedToken, e.Kind)
	require.Equal(t, 1, e.Line)
	// The offending element starts at column 9.
	require.Equal(t, 9, e.Column)
}

func TestParseRedefinitionError(t *testing.T) {
	_, err := Parse([]byte("x = { a = 1; a = 2; };"))
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrVariableRedefinition, e.Kind)
	require.Contains(t, e.Error(), "`a`")
	require.Contains(t, e.Error(), "`x`")
}

func TestParseUnexpectedTokenPosition(t *testing.T) {
	_, err := Parse([]byte("a = 1;\nb 2;"))
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrUnexpectedToken, e.Kind)
	require.Equal(t, 2, e.Line)
	require.Equal(t, 3, e.Column)
}

func TestParseDeepNesting(t *testing.T) {
	c, err := Parse([]byte(`root = { arr = [( "x", { inner = [1, 2]; } )]; };`))
	require.NoError(t, err)

	list := c.Global().Struct("root").Array("arr").ListAt(0)
	require.NotNil(t, list)
	require.Equal(t, "x", list.StringAt(0))
	require.Equal(t, int64(2), list.StructAt(1).Array("inner").IntAt(1))
}

func TestParseFailureLeavesNoConfig(t *testing.T) {
	c, err := Parse([]byte("x = [1, 2"))
	require.Error(t, err)
	require.Nil(t, c)

	// A nil config is still safe to query.
	require.Nil(t, c.Global())
	require.Equal(t, int64(0), c.Global().Int("x"))
}
