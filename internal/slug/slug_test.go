package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("returns 8 characters from the slug alphabet", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			s, err := New()
			require.NoError(t, err)
			assert.Len(t, s, 8)
			for _, r := range s {
				assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'),
					"unexpected rune %q in slug %q", r, s)
			}
		}
	})

	t.Run("does not repeat across a small sample", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			s, err := New()
			require.NoError(t, err)
			assert.False(t, seen[s], "duplicate slug %q", s)
			seen[s] = true
		}
	})
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Curso de React", "curso-de-react"},
		{"strips diacritics", "Código Avançado em Ação", "codigo-avancado-em-acao"},
		{"collapses symbol runs", "react  &  next.js!!", "react-next-js"},
		{"trims leading and trailing separators", "--hello world--", "hello-world"},
		{"empty input", "", ""},
		{"only symbols", "!!!???", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}

	t.Run("caps output at 50 characters", func(t *testing.T) {
		out := Slugify(strings.Repeat("palavra ", 20))
		assert.LessOrEqual(t, len(out), 50)
		assert.False(t, strings.HasSuffix(out, "-"))
	})
}
