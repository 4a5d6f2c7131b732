package handlers

import (
	"fmt"
	"io"

	"storedash/internal/apiclient"

	"github.com/gofiber/fiber/v2"
)

// uploads reads every non-empty file posted under field. A request that is
// not multipart simply has none.
func uploads(c *fiber.Ctx, field string) ([]apiclient.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var out []apiclient.File
	for _, fh := range form.File[field] {
		if fh.Size == 0 || fh.Filename == "" {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		b, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		out = append(out, apiclient.File{Field: field, Filename: fh.Filename, Content: b})
	}
	return out, nil
}
