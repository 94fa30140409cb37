package hexdump

import (
	"fmt"

	"hextable/common/annotation"
	C "hextable/common/constant"
	"hextable/common/textbuf"
)

// Pages splits data into table-sized pages. Empty input still yields one
// empty page so callers always get a table.
func Pages(data []byte) [][]byte {
	if len(data) == 0 {
		return [][]byte{data}
	}
	pages := make([][]byte, 0, (len(data)+C.TableSize-1)/C.TableSize)
	for off := 0; off < len(data); off += C.TableSize {
		end := off + C.TableSize
		if end > len(data) {
			end = len(data)
		}
		pages = append(pages, data[off:end])
	}
	return pages
}

// PageTitle labels page n when a payload spans more than one table.
func PageTitle(title string, n, total int) string {
	if total <= 1 {
		return title
	}
	label := fmt.Sprintf("@0x%04X %d/%d", n*C.TableSize, n+1, total)
	if title == "" {
		return label
	}
	return title + " " + label
}

// RenderPages renders every page of data one table after another. The
// annotation table applies to each page's own indices. The result is
// all-or-nothing like the single-table renders.
func (r *Renderer) RenderPages(data []byte, table *annotation.Table, title, tail string, colored bool) (string, error) {
	pages := Pages(data)
	out := textbuf.New(r.alloc)
	for n, page := range pages {
		var (
			s   string
			err error
		)
		pageTitle := PageTitle(title, n, len(pages))
		if colored {
			s, err = r.RenderAnnotated(page, table, pageTitle, tail)
		} else {
			s, err = r.RenderPlain(page, pageTitle, tail)
		}
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n, err)
		}
		if err := out.Append(s); err != nil {
			return "", err
		}
	}
	return out.Finish(), nil
}
