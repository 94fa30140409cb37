package parser

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// templateFunctionExpand turns "3-6,9" into "3,4,5,6,9". Every index must
// address a table cell.
func templateFunctionExpand(s string) (string, error) {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		from, to, isRange := strings.Cut(part, "-")
		nFrom, err := strconv.Atoi(from)
		if err != nil {
			return "", fmt.Errorf("invalid template: %s. Expected: expand \"[int]-[int],[int]\"", s)
		}
		nTo := nFrom
		if isRange {
			if nTo, err = strconv.Atoi(to); err != nil {
				return "", fmt.Errorf("invalid template: %s. %q does not end in an integer", s, part)
			}
		}
		if nFrom > nTo {
			nFrom, nTo = nTo, nFrom
		}
		if nFrom < 0 || nTo > 255 {
			return "", fmt.Errorf("invalid template: %s. Integers must be in range [0, 255]", s)
		}
		for i := nFrom; i <= nTo; i++ {
			result = append(result, strconv.Itoa(i))
		}
	}
	return strings.Join(result, ","), nil
}

// templateFunctionHex turns "0x1F" style literals into plain integers so
// configs can name byte offsets the way dumps print them.
func templateFunctionHex(s string) (string, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8)
	if err != nil {
		return "", fmt.Errorf("invalid template: %s. Expected a byte in hex", s)
	}
	return strconv.FormatUint(n, 10), nil
}

// ApplyTemplate runs config content through text/template with the expand
// and hex helpers.
func ApplyTemplate(content []byte) ([]byte, error) {
	tmpl, err := template.New("config").Funcs(template.FuncMap{
		"expand": templateFunctionExpand,
		"hex":    templateFunctionHex,
	}).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, nil); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return []byte(result.String()), nil
}
