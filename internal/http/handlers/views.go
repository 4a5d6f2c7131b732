package handlers

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	html "github.com/gofiber/template/html/v2"

	"storedash/internal/domain"
)

// NewEngine loads the page templates with the helpers they rely on.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("money", domain.Money)
	engine.AddFunc("date", func(s string) string {
		t := domain.ParseTime(s)
		if t.IsZero() {
			return s
		}
		return t.Format("Jan 2, 2006")
	})
	engine.AddFunc("datetime", func(s string) string {
		t := domain.ParseTime(s)
		if t.IsZero() {
			return s
		}
		return t.Format("Jan 2, 2006 15:04")
	})
	engine.AddFunc("signed", signed)
	engine.AddFunc("add", func(a, b int) int { return a + b })
	engine.AddFunc("title", title)
	engine.AddFunc("initials", domain.Initials)
	return engine
}

// title upper-cases the first rune only.
func title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
