package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/scan-io-git/propusage/pkg/shared/errors"
)

func TestBind(t *testing.T) {
	c := NewCompiler("", "", false)

	p, err := c.Bind(`properties\.getProperty\("REPLACE_THIS"\)`, "my.property.value")
	require.NoError(t, err)
	assert.Equal(t, "my.property.value", p.Property)
	assert.True(t, p.Regexp.MatchString(`final String v = properties.getProperty("my.property.value");`))
	assert.False(t, p.Regexp.MatchString(`properties.getProperty("my.property.other")`))
}

func TestBindDefaultTemplate(t *testing.T) {
	c := NewCompiler("", "", false)

	p, err := c.Bind(DefaultTemplate, "other.prop.val")
	require.NoError(t, err)
	assert.True(t, p.Regexp.MatchString(`Integer.valueOf(properties.getProperty("other.prop.val"))`))
	assert.False(t, p.Regexp.MatchString(`other.prop.val`))
}

func TestBindPropertyNamesWithMetacharacters(t *testing.T) {
	tpl := `"REPLACE_THIS"`

	t.Run("quoted by default", func(t *testing.T) {
		p, err := NewCompiler("", "", false).Bind(tpl, "a.b")
		require.NoError(t, err)
		assert.True(t, p.Regexp.MatchString(`get("a.b")`))
		assert.False(t, p.Regexp.MatchString(`get("axb")`))
	})

	t.Run("raw names act as regex", func(t *testing.T) {
		p, err := NewCompiler("", "", true).Bind(tpl, "a.b")
		require.NoError(t, err)
		assert.True(t, p.Regexp.MatchString(`get("a.b")`))
		assert.True(t, p.Regexp.MatchString(`get("axb")`))
	})

	t.Run("raw name breaking the expression", func(t *testing.T) {
		_, err := NewCompiler("", "", true).Bind(tpl, "a(b")
		require.Error(t, err)
		assert.True(t, errors.Is(err, sharederrors.ErrConfiguration))
	})

	t.Run("quoted name with parenthesis", func(t *testing.T) {
		p, err := NewCompiler("", "", false).Bind(tpl, "a(b")
		require.NoError(t, err)
		assert.True(t, p.Regexp.MatchString(`"a(b"`))
	})
}

func TestRegexLikeTemplates(t *testing.T) {
	c := NewCompiler("", "", false)

	p, err := c.Bind(`(get|read)Property\(\s*"REPLACE_THIS"\s*\)`, "x.y")
	require.NoError(t, err)
	assert.True(t, p.Regexp.MatchString(`readProperty( "x.y" )`))
	assert.True(t, p.Regexp.MatchString(`getProperty("x.y")`))
	assert.False(t, p.Regexp.MatchString(`setProperty("x.y")`))
}

func TestCustomPlaceholder(t *testing.T) {
	c := NewCompiler("@KEY@", "", false)

	p, err := c.Bind(`\$\{@KEY@\}`, "also-prop.val")
	require.NoError(t, err)
	assert.True(t, p.Regexp.MatchString(`Double.valueOf("${also-prop.val}")`))

	_, err = c.Bind(`\$\{REPLACE_THIS\}`, "also-prop.val")
	assert.True(t, errors.Is(err, sharederrors.ErrConfiguration))
}

func TestCompileBound(t *testing.T) {
	c := NewCompiler("", "", false)
	patterns, err := c.CompileBound(
		[]string{`properties\.getProperty\("REPLACE_THIS"\)`, `\$\{REPLACE_THIS\}`},
		[]string{"a", "b", "c"},
	)
	require.NoError(t, err)
	require.Len(t, patterns, 6)

	var props []string
	for _, p := range patterns {
		props = append(props, p.Property)
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, props)
}

func TestCompileGeneric(t *testing.T) {
	c := NewCompiler("", "", false)
	patterns, err := c.CompileGeneric([]string{`properties\.getProperty\("REPLACE_THIS"\)`})
	require.NoError(t, err)
	require.Len(t, patterns, 1)

	m := patterns[0].FindStringSubmatch(`value1 = properties.getProperty("my-too.property.value");`)
	require.NotNil(t, m)
	assert.Equal(t, "my-too.property.value", m[1])

	assert.Nil(t, patterns[0].FindStringSubmatch(`properties.getProperty("Upper.Case")`))
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name      string
		compiler  *Compiler
		templates []string
	}{
		{name: "no templates", compiler: NewCompiler("", "", false), templates: nil},
		{name: "missing placeholder", compiler: NewCompiler("", "", false), templates: []string{`getProperty\("x"\)`}},
		{name: "placeholder twice", compiler: NewCompiler("", "", false), templates: []string{`REPLACE_THIS REPLACE_THIS`}},
		{name: "malformed template", compiler: NewCompiler("", "", false), templates: []string{`getProperty("REPLACE_THIS"`}},
		{name: "generic pattern without group", compiler: NewCompiler("", `[a-z.]+`, false), templates: []string{`"REPLACE_THIS"`}},
		{name: "malformed generic pattern", compiler: NewCompiler("", `([a-z`, false), templates: []string{`"REPLACE_THIS"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.compiler.Validate(tt.templates)
			require.Error(t, err)
			assert.True(t, errors.Is(err, sharederrors.ErrConfiguration))
		})
	}

	assert.NoError(t, NewCompiler("", "", false).Validate([]string{DefaultTemplate}))
}
