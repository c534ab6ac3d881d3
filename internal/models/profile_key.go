package models

import (
	"strings"
	"unicode/utf8"
)

// ProfileKey возвращает ключ профиля заведения: название в нижнем регистре,
// каждый символ вне [a-z0-9] заменён на "_".
func ProfileKey(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	b.Grow(utf8.RuneCountInString(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
